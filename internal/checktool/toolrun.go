package checktool

import (
	"time"

	"github.com/temirov/checkup/internal/execshell"
)

const (
	checkExitCodeValid   = 0
	checkExitCodeInvalid = 1
)

// ExitCodeClassifier maps a tool's exit status onto the check outcome: valid,
// invalid, or a fatal tool failure reported as an error.
type ExitCodeClassifier func(toolName string, targetPath string, exitCode int) (bool, error)

// ClassifyCheckExitCode maps the shared exit-code convention used by audit
// and check verbs: 0 means the target is compliant, 1 means the tool found
// violations, and any other code is a genuine tool failure.
func ClassifyCheckExitCode(toolName string, targetPath string, exitCode int) (bool, error) {
	switch exitCode {
	case checkExitCodeValid:
		return true, nil
	case checkExitCodeInvalid:
		return false, nil
	default:
		return false, NewUnexpectedExitCodeError(toolName, targetPath, exitCode)
	}
}

// BuildToolCommand assembles the shell command a plugin submits to its
// executor: prefix, executable tokens, extra arguments, the target path, and
// the caller-supplied suffix, with output capture enabled.
func BuildToolCommand(executableTokens []string, extraArguments []string, commandPrefix []string, targetPath string, commandSuffix []string, timeout time.Duration) execshell.ShellCommand {
	arguments := make([]string, 0, len(executableTokens)-1+len(extraArguments))
	arguments = append(arguments, executableTokens[1:]...)
	arguments = append(arguments, extraArguments...)

	suffix := make([]string, 0, 1+len(commandSuffix))
	suffix = append(suffix, targetPath)
	suffix = append(suffix, commandSuffix...)

	return execshell.ShellCommand{
		Name: execshell.CommandName(executableTokens[0]),
		Details: execshell.CommandDetails{
			Arguments:     arguments,
			Prefix:        commandPrefix,
			Suffix:        suffix,
			CaptureOutput: true,
			Timeout:       timeout,
		},
	}
}

// SupportedByExtension implements the shared applicability rule: directories
// are always supported so callers may pass them straight to the external
// tool, and files match when their extension appears in the supported set.
func SupportedByExtension(targetPath string, supportedExtensions map[string]struct{}) bool {
	if classifyPath(targetPath) == PathTypeDirectory {
		return true
	}
	_, supported := supportedExtensions[fileExtension(targetPath)]
	return supported
}
