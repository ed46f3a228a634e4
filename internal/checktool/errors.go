package checktool

import "fmt"

const (
	registrationErrorTemplateConstant     = "plugin %q rejected at registration: %s"
	targetNotFoundTemplateConstant        = "target does not exist: %s"
	toolExecutionWithCodeTemplateConstant = "[exit code %d] %s"
	toolExecutionTemplateConstant         = "%s"
	unexpectedExitCodeTemplateConstant    = "%s reported an unexpected exit code for %s"
	formatFailureTemplateConstant         = "%s failed to format %s"
)

// RegistrationError reports malformed plugin metadata detected while building a registry.
type RegistrationError struct {
	ToolName string
	Reason   string
}

// Error describes the rejected plugin and the validation rule it violated.
func (failure RegistrationError) Error() string {
	return fmt.Sprintf(registrationErrorTemplateConstant, failure.ToolName, failure.Reason)
}

// TargetNotFoundError reports a requested target path that does not exist.
type TargetNotFoundError struct {
	Path string
}

// Error names the missing target.
func (failure TargetNotFoundError) Error() string {
	return fmt.Sprintf(targetNotFoundTemplateConstant, failure.Path)
}

// ToolExecutionError reports an external tool exiting outside its defined
// clean/dirty convention, or a destructive operation failing outright. The
// exit code is absent when the failure carries none.
type ToolExecutionError struct {
	ToolName string
	Message  string
	ExitCode *int
}

// Error renders the message with the offending exit code when one exists.
func (failure ToolExecutionError) Error() string {
	if failure.ExitCode != nil {
		return fmt.Sprintf(toolExecutionWithCodeTemplateConstant, *failure.ExitCode, failure.Message)
	}
	return fmt.Sprintf(toolExecutionTemplateConstant, failure.Message)
}

// NewUnexpectedExitCodeError builds the ToolExecutionError raised when an
// audit or check exit code falls outside the 0/1 convention.
func NewUnexpectedExitCodeError(toolName string, targetPath string, exitCode int) ToolExecutionError {
	reportedExitCode := exitCode
	return ToolExecutionError{
		ToolName: toolName,
		Message:  fmt.Sprintf(unexpectedExitCodeTemplateConstant, toolName, targetPath),
		ExitCode: &reportedExitCode,
	}
}

// NewFormatFailureError builds the ToolExecutionError raised when a
// destructive format command exits non-zero.
func NewFormatFailureError(toolName string, targetPath string, exitCode int) ToolExecutionError {
	reportedExitCode := exitCode
	return ToolExecutionError{
		ToolName: toolName,
		Message:  fmt.Sprintf(formatFailureTemplateConstant, toolName, targetPath),
		ExitCode: &reportedExitCode,
	}
}
