package formatters

import (
	"time"

	"github.com/temirov/checkup/internal/checktool"
)

const blackFormatterNameConstant = "black"

var (
	blackDefaultExecutableTokens = []string{"black"}
	blackCheckArguments          = []string{"--check"}
)

// BlackFormatter wraps the black code formatter for Python sources.
type BlackFormatter struct {
	toolFormatter
}

// NewBlackFormatter constructs the black formatter around the provided executor.
func NewBlackFormatter(executor checktool.ToolCommandExecutor, override checktool.ToolOverride, timeout time.Duration) (*BlackFormatter, error) {
	baseFormatter, constructionError := newToolFormatter(blackFormatterNameConstant, blackDefaultExecutableTokens, blackCheckArguments, pythonSupportedExtensions, executor, override, timeout)
	if constructionError != nil {
		return nil, constructionError
	}
	return &BlackFormatter{toolFormatter: baseFormatter}, nil
}
