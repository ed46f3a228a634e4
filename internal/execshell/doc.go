// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging and timeouts via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the command and
// result abstractions checkup uses to run linters and formatters in a
// testable manner.
package execshell
