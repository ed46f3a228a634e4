package formatters

import (
	"context"
	"errors"
	"time"

	"github.com/temirov/checkup/internal/checktool"
)

const executorRequiredMessageConstant = "formatter requires a tool command executor"

var pythonSupportedExtensions = map[string]struct{}{
	".py":  {},
	".pyi": {},
}

// toolFormatter implements the formatter contract for tools whose check mode
// follows the shared exit-code convention and whose destructive mode must
// exit zero on success.
type toolFormatter struct {
	toolName            string
	executor            checktool.ToolCommandExecutor
	executableTokens    []string
	checkArguments      []string
	extraArguments      []string
	supportedExtensions map[string]struct{}
	timeout             time.Duration
}

func newToolFormatter(toolName string, defaultExecutableTokens []string, checkArguments []string, supportedExtensions map[string]struct{}, executor checktool.ToolCommandExecutor, override checktool.ToolOverride, timeout time.Duration) (toolFormatter, error) {
	if executor == nil {
		return toolFormatter{}, errors.New(executorRequiredMessageConstant)
	}

	executableTokens, extraArguments := checktool.ApplyOverride(defaultExecutableTokens, override)

	return toolFormatter{
		toolName:            toolName,
		executor:            executor,
		executableTokens:    executableTokens,
		checkArguments:      checkArguments,
		extraArguments:      extraArguments,
		supportedExtensions: supportedExtensions,
		timeout:             timeout,
	}, nil
}

// Name returns the registry key identifying the formatter.
func (formatter *toolFormatter) Name() string {
	return formatter.toolName
}

// IsSupportedFiletype reports whether the formatter understands the target.
func (formatter *toolFormatter) IsSupportedFiletype(targetPath string) bool {
	return checktool.SupportedByExtension(targetPath, formatter.supportedExtensions)
}

// Check runs the formatter in its non-destructive mode and classifies the exit code.
func (formatter *toolFormatter) Check(executionContext context.Context, targetPath string, commandPrefix []string, commandSuffix []string) (checktool.FileResult, error) {
	checkArguments := make([]string, 0, len(formatter.checkArguments)+len(formatter.extraArguments))
	checkArguments = append(checkArguments, formatter.checkArguments...)
	checkArguments = append(checkArguments, formatter.extraArguments...)

	command := checktool.BuildToolCommand(formatter.executableTokens, checkArguments, commandPrefix, targetPath, commandSuffix, formatter.timeout)

	executionResult, executionError := formatter.executor.Execute(executionContext, command)
	if executionError != nil {
		return checktool.FileResult{}, executionError
	}

	valid, classificationError := checktool.ClassifyCheckExitCode(formatter.toolName, targetPath, executionResult.ExitCode)
	if classificationError != nil {
		return checktool.FileResult{}, classificationError
	}

	return checktool.NewFileResult(targetPath, formatter.toolName, valid, nil, checktool.OutputFromExecution(executionResult)), nil
}

// Format checks the target first and rewrites it only when the check reports
// violations, avoiding a second process spawn for already compliant targets.
// A non-zero exit from the destructive command is always fatal.
func (formatter *toolFormatter) Format(executionContext context.Context, targetPath string, commandPrefix []string, commandSuffix []string) (checktool.FileResult, error) {
	checkResult, checkError := formatter.Check(executionContext, targetPath, commandPrefix, commandSuffix)
	if checkError != nil {
		return checktool.FileResult{}, checkError
	}

	changed := false
	if checkResult.Valid {
		return checktool.NewFileResult(targetPath, formatter.toolName, true, &changed, nil), nil
	}

	command := checktool.BuildToolCommand(formatter.executableTokens, formatter.extraArguments, commandPrefix, targetPath, commandSuffix, formatter.timeout)

	executionResult, executionError := formatter.executor.Execute(executionContext, command)
	if executionError != nil {
		return checktool.FileResult{}, executionError
	}

	if executionResult.ExitCode != 0 {
		return checktool.FileResult{}, checktool.NewFormatFailureError(formatter.toolName, targetPath, executionResult.ExitCode)
	}

	changed = true
	return checktool.NewFileResult(targetPath, formatter.toolName, true, &changed, checktool.OutputFromExecution(executionResult)), nil
}
