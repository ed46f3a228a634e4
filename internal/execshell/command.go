package execshell

import (
	"strings"
	"time"
)

const (
	commandTokenJoinSeparatorConstant = " "
)

// CommandName identifies the executable a shell command invokes.
type CommandName string

// CommandDetails describes how a command invocation is assembled and observed.
type CommandDetails struct {
	// Arguments follow the executable token in the constructed command.
	Arguments []string
	// Prefix tokens are prepended to the executable, for example a
	// tool-version-manager wrapper such as "mise exec --".
	Prefix []string
	// Suffix tokens are appended after the arguments.
	Suffix []string
	// WorkingDirectory overrides the child process working directory when set.
	WorkingDirectory string
	// EnvironmentVariables are merged over the parent environment.
	EnvironmentVariables map[string]string
	// UseShell joins the constructed tokens into a single string executed
	// through the system shell instead of an argument vector.
	UseShell bool
	// CaptureOutput records standard output and standard error as decoded
	// text on the execution result. When disabled the streams are inherited.
	CaptureOutput bool
	// RaiseOnNonZeroExit converts a non-zero exit code into a
	// CommandFailedError instead of returning an ExecutionResult.
	RaiseOnNonZeroExit bool
	// Timeout bounds the child process runtime. Zero applies the executor
	// default.
	Timeout time.Duration
}

// ShellCommand pairs an executable name with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// OriginalTokens returns the executable and its arguments without prefix or suffix.
func (command ShellCommand) OriginalTokens() []string {
	tokens := make([]string, 0, 1+len(command.Details.Arguments))
	tokens = append(tokens, string(command.Name))
	tokens = append(tokens, command.Details.Arguments...)
	return tokens
}

// ConstructedTokens returns the full token list in prefix, base, suffix order.
func (command ShellCommand) ConstructedTokens() []string {
	tokens := make([]string, 0, len(command.Details.Prefix)+1+len(command.Details.Arguments)+len(command.Details.Suffix))
	tokens = append(tokens, command.Details.Prefix...)
	tokens = append(tokens, command.OriginalTokens()...)
	tokens = append(tokens, command.Details.Suffix...)
	return tokens
}

// ShellString renders the constructed tokens as a single shell command string.
func (command ShellCommand) ShellString() string {
	return strings.Join(command.ConstructedTokens(), commandTokenJoinSeparatorConstant)
}

// ExecutionResult captures the observable outcome of running a command.
type ExecutionResult struct {
	OriginalTokens    []string
	ConstructedTokens []string
	UsedShell         bool
	CapturedOutput    bool
	StandardOutput    string
	StandardError     string
	ExitCode          int
}
