package auditors

import (
	"time"

	"github.com/temirov/checkup/internal/checktool"
)

const flakeEightAuditorNameConstant = "flake8"

var flakeEightDefaultExecutableTokens = []string{"flake8"}

// FlakeEightAuditor wraps the flake8 style checker for Python sources.
type FlakeEightAuditor struct {
	toolAuditor
}

// NewFlakeEightAuditor constructs the flake8 auditor around the provided executor.
func NewFlakeEightAuditor(executor checktool.ToolCommandExecutor, override checktool.ToolOverride, timeout time.Duration) (*FlakeEightAuditor, error) {
	baseAuditor, constructionError := newToolAuditor(flakeEightAuditorNameConstant, flakeEightDefaultExecutableTokens, pythonSupportedExtensions, executor, override, timeout)
	if constructionError != nil {
		return nil, constructionError
	}
	return &FlakeEightAuditor{toolAuditor: baseAuditor}, nil
}
