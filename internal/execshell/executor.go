package execshell

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCommandTimeoutConstant = 120 * time.Second

	executingCommandMessageConstant = "executing command"

	logFieldConstructedCommandConstant = "constructed_command"
	logFieldUseShellConstant           = "use_shell"
	logFieldCaptureOutputConstant      = "capture_output"
	logFieldRaiseOnNonZeroConstant     = "raise_on_non_zero_exit"
	logFieldExitCodeConstant           = "exit_code"
	commandCompletedMessageConstant    = "command completed"
	commandSpawnFailureMessageConstant = "command could not be executed"
)

// CommandRunner executes a fully described shell command and reports its result.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ShellExecutor coordinates command construction, tracing, and execution policy.
type ShellExecutor struct {
	logger         *zap.Logger
	commandRunner  CommandRunner
	eventObserver  CommandEventObserver
	defaultTimeout time.Duration
}

// ExecutorOption customizes a ShellExecutor during construction.
type ExecutorOption func(*ShellExecutor)

// WithEventObserver attaches an observer receiving command lifecycle events.
func WithEventObserver(observer CommandEventObserver) ExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.eventObserver = observer
		}
	}
}

// WithDefaultTimeout overrides the fallback timeout applied to commands that do not carry one.
func WithDefaultTimeout(timeout time.Duration) ExecutorOption {
	return func(executor *ShellExecutor) {
		if timeout > 0 {
			executor.defaultTimeout = timeout
		}
	}
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, options ...ExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:         logger,
		commandRunner:  commandRunner,
		eventObserver:  discardingCommandEventObserver{},
		defaultTimeout: defaultCommandTimeoutConstant,
	}

	for _, option := range options {
		option(executor)
	}

	return executor, nil
}

// Execute runs the supplied command and applies the configured execution policy.
//
// A non-zero exit code is returned inside the ExecutionResult unless the
// command requested RaiseOnNonZeroExit, in which case a CommandFailedError is
// returned instead. Failures that prevent the process from producing an exit
// code are always reported as CommandExecutionError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(
		executingCommandMessageConstant,
		zap.Strings(logFieldConstructedCommandConstant, command.ConstructedTokens()),
		zap.Bool(logFieldUseShellConstant, command.Details.UseShell),
		zap.Bool(logFieldCaptureOutputConstant, command.Details.CaptureOutput),
		zap.Bool(logFieldRaiseOnNonZeroConstant, command.Details.RaiseOnNonZeroExit),
	)

	executor.eventObserver.CommandStarted(command)

	boundedContext, cancelExecution := executor.boundExecutionContext(executionContext, command)
	defer cancelExecution()

	executionResult, runError := executor.commandRunner.Run(boundedContext, command)
	if runError != nil {
		executor.logger.Debug(
			commandSpawnFailureMessageConstant,
			zap.Strings(logFieldConstructedCommandConstant, command.ConstructedTokens()),
			zap.Error(runError),
		)
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.eventObserver.CommandExecutionFailed(command, executionFailure)
		return ExecutionResult{}, executionFailure
	}

	executor.logger.Debug(
		commandCompletedMessageConstant,
		zap.Strings(logFieldConstructedCommandConstant, command.ConstructedTokens()),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	if executionResult.ExitCode != 0 && command.Details.RaiseOnNonZeroExit {
		commandFailure := CommandFailedError{Command: command, Result: executionResult}
		executor.eventObserver.CommandCompleted(command, executionResult)
		return ExecutionResult{}, commandFailure
	}

	executor.eventObserver.CommandCompleted(command, executionResult)
	return executionResult, nil
}

func (executor *ShellExecutor) boundExecutionContext(executionContext context.Context, command ShellCommand) (context.Context, context.CancelFunc) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	commandTimeout := command.Details.Timeout
	if commandTimeout <= 0 {
		commandTimeout = executor.defaultTimeout
	}

	return context.WithTimeout(executionContext, commandTimeout)
}
