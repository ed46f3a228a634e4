package execshell

// CommandEventObserver is notified about the lifecycle of every tool process
// the executor spawns. Observers must tolerate concurrent notifications when
// the orchestrator runs multiple workers.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the tool process is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the tool process exits, with its result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the process could not run at all,
	// before any execution result exists.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// discardingCommandEventObserver is installed when no observer is configured.
type discardingCommandEventObserver struct{}

func (discardingCommandEventObserver) CommandStarted(ShellCommand) {}

func (discardingCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (discardingCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
