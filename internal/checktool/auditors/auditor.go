package auditors

import (
	"context"
	"errors"
	"time"

	"github.com/temirov/checkup/internal/checktool"
)

const executorRequiredMessageConstant = "auditor requires a tool command executor"

var pythonSupportedExtensions = map[string]struct{}{
	".py":  {},
	".pyi": {},
}

// toolAuditor implements the auditor contract for external linters. The shared
// exit-code convention (0 clean, 1 findings, anything else fatal) is the
// default; tools with their own status scheme install a dedicated classifier.
type toolAuditor struct {
	toolName            string
	executor            checktool.ToolCommandExecutor
	executableTokens    []string
	extraArguments      []string
	supportedExtensions map[string]struct{}
	timeout             time.Duration
	classifyExitCode    checktool.ExitCodeClassifier
}

func newToolAuditor(toolName string, defaultExecutableTokens []string, supportedExtensions map[string]struct{}, executor checktool.ToolCommandExecutor, override checktool.ToolOverride, timeout time.Duration) (toolAuditor, error) {
	if executor == nil {
		return toolAuditor{}, errors.New(executorRequiredMessageConstant)
	}

	executableTokens, extraArguments := checktool.ApplyOverride(defaultExecutableTokens, override)

	return toolAuditor{
		toolName:            toolName,
		executor:            executor,
		executableTokens:    executableTokens,
		extraArguments:      extraArguments,
		supportedExtensions: supportedExtensions,
		timeout:             timeout,
		classifyExitCode:    checktool.ClassifyCheckExitCode,
	}, nil
}

// Name returns the registry key identifying the auditor.
func (auditor *toolAuditor) Name() string {
	return auditor.toolName
}

// IsSupportedFiletype reports whether the auditor understands the target.
func (auditor *toolAuditor) IsSupportedFiletype(targetPath string) bool {
	return checktool.SupportedByExtension(targetPath, auditor.supportedExtensions)
}

// Audit runs the wrapped linter against the target and classifies its exit code.
func (auditor *toolAuditor) Audit(executionContext context.Context, targetPath string, commandPrefix []string, commandSuffix []string) (checktool.FileResult, error) {
	command := checktool.BuildToolCommand(auditor.executableTokens, auditor.extraArguments, commandPrefix, targetPath, commandSuffix, auditor.timeout)

	executionResult, executionError := auditor.executor.Execute(executionContext, command)
	if executionError != nil {
		return checktool.FileResult{}, executionError
	}

	valid, classificationError := auditor.classifyExitCode(auditor.toolName, targetPath, executionResult.ExitCode)
	if classificationError != nil {
		return checktool.FileResult{}, classificationError
	}

	return checktool.NewFileResult(targetPath, auditor.toolName, valid, nil, checktool.OutputFromExecution(executionResult)), nil
}
