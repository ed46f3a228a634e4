package auditors

import (
	"time"

	"github.com/temirov/checkup/internal/checktool"
)

const pylintAuditorNameConstant = "pylint"

// --score=n keeps the captured output limited to findings.
var pylintDefaultExecutableTokens = []string{"pylint", "--score=n"}

// PylintAuditor wraps the pylint static analyzer for Python sources.
type PylintAuditor struct {
	toolAuditor
}

// NewPylintAuditor constructs the pylint auditor around the provided executor.
func NewPylintAuditor(executor checktool.ToolCommandExecutor, override checktool.ToolOverride, timeout time.Duration) (*PylintAuditor, error) {
	baseAuditor, constructionError := newToolAuditor(pylintAuditorNameConstant, pylintDefaultExecutableTokens, pythonSupportedExtensions, executor, override, timeout)
	if constructionError != nil {
		return nil, constructionError
	}
	baseAuditor.classifyExitCode = classifyPylintExitCode
	return &PylintAuditor{toolAuditor: baseAuditor}, nil
}

const pylintUsageErrorExitCodeConstant = 32

// Pylint exits with a bit-mask of the message categories it emitted
// (1 fatal message, 2 error, 4 warning, 8 refactor, 16 convention); 32 marks
// a usage error. Every mask below 32 is a finding, not a tool failure.
func classifyPylintExitCode(toolName string, targetPath string, exitCode int) (bool, error) {
	if exitCode == 0 {
		return true, nil
	}
	if exitCode > 0 && exitCode < pylintUsageErrorExitCodeConstant {
		return false, nil
	}
	return false, checktool.NewUnexpectedExitCodeError(toolName, targetPath, exitCode)
}
