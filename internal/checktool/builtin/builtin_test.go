package builtin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/checktool"
	"github.com/temirov/checkup/internal/checktool/builtin"
	"github.com/temirov/checkup/internal/execshell"
)

const testBuiltinTimeoutConstant = 10 * time.Second

type recordingToolExecutor struct {
	executedCommands []execshell.ShellCommand
}

func (executor *recordingToolExecutor) Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, command)
	return execshell.ExecutionResult{
		ConstructedTokens: command.ConstructedTokens(),
		CapturedOutput:    command.Details.CaptureOutput,
	}, nil
}

func TestNewDefaultRegistryRegistersShippedPlugins(testInstance *testing.T) {
	registry, constructionError := builtin.NewDefaultRegistry(&recordingToolExecutor{}, checktool.Manifest{}, testBuiltinTimeoutConstant)
	require.NoError(testInstance, constructionError)

	require.Equal(testInstance, []string{"flake8", "pylint"}, registry.AuditorNames())
	require.Equal(testInstance, []string{"black", "isort"}, registry.FormatterNames())
}

func TestNewDefaultRegistryRequiresExecutor(testInstance *testing.T) {
	_, constructionError := builtin.NewDefaultRegistry(nil, checktool.Manifest{}, testBuiltinTimeoutConstant)
	require.Error(testInstance, constructionError)
}

func TestNewDefaultRegistryAppliesManifestOverrides(testInstance *testing.T) {
	manifest := checktool.Manifest{Tools: map[string]checktool.ToolOverride{
		"flake8": {ExecutableTokens: []string{"python", "-m", "flake8"}},
	}}

	toolExecutor := &recordingToolExecutor{}
	registry, constructionError := builtin.NewDefaultRegistry(toolExecutor, manifest, testBuiltinTimeoutConstant)
	require.NoError(testInstance, constructionError)

	resolvedAuditors, resolutionError := registry.ResolveAuditors("flake8")
	require.NoError(testInstance, resolutionError)
	require.Len(testInstance, resolvedAuditors, 1)

	_, auditError := resolvedAuditors[0].Audit(context.Background(), "target.py", nil, nil)
	require.NoError(testInstance, auditError)

	require.Len(testInstance, toolExecutor.executedCommands, 1)
	require.Equal(testInstance,
		[]string{"python", "-m", "flake8", "target.py"},
		toolExecutor.executedCommands[0].ConstructedTokens(),
	)
}
