package execshell

import (
	"errors"
	"fmt"
	"strings"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor requires a logger"
	commandRunnerNotConfiguredMessageConstant = "shell executor requires a command runner"
	commandFailedTemplateConstant             = "%s failed with exit code %d"
	commandFailedStandardErrorSuffixConstant  = ": %s"
	commandExecutionFailedTemplateConstant    = "%s could not be executed: %v"
)

// Configuration errors reported by NewShellExecutor.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that completed with a non-zero exit
// code while RaiseOnNonZeroExit was requested.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command, its exit code, and trailing standard error output.
func (failure CommandFailedError) Error() string {
	message := fmt.Sprintf(commandFailedTemplateConstant, failure.Command.ShellString(), failure.Result.ExitCode)
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		message += fmt.Sprintf(commandFailedStandardErrorSuffixConstant, trimmedStandardError)
	}
	return message
}

// CommandExecutionError reports a command that never produced an exit code,
// typically because the executable could not be spawned or the context
// deadline expired.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command together with the underlying failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, failure.Command.ShellString(), failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}
