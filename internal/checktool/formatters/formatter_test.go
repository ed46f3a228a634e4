package formatters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/checktool"
	"github.com/temirov/checkup/internal/checktool/formatters"
	"github.com/temirov/checkup/internal/execshell"
)

const (
	testCompliantTargetCaseNameConstant   = "compliant_target_skips_rewrite"
	testViolatingTargetCaseNameConstant   = "violating_target_is_rewritten"
	testRewriteFailureCaseNameConstant    = "rewrite_failure_is_fatal"
	testCheckFailureCaseNameConstant      = "check_failure_is_fatal"
	testFormatterTargetFileNameConstant   = "module.py"
	testFormatterDiffOutputConstant       = "would reformat module.py"
	testFormatterTimeoutConstant          = 5 * time.Second
	testFormatterFatalRewriteCodeConstant = 123
)

type scriptedToolExecutor struct {
	exitCodes        []int
	executedCommands []execshell.ShellCommand
}

func (executor *scriptedToolExecutor) Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	invocationIndex := len(executor.executedCommands)
	executor.executedCommands = append(executor.executedCommands, command)

	exitCode := 0
	if invocationIndex < len(executor.exitCodes) {
		exitCode = executor.exitCodes[invocationIndex]
	}

	return execshell.ExecutionResult{
		OriginalTokens:    command.OriginalTokens(),
		ConstructedTokens: command.ConstructedTokens(),
		CapturedOutput:    command.Details.CaptureOutput,
		StandardOutput:    testFormatterDiffOutputConstant,
		ExitCode:          exitCode,
	}, nil
}

func TestBlackFormatterFormat(testInstance *testing.T) {
	testCases := []struct {
		name                string
		exitCodes           []int
		expectedInvocations int
		expectedChanged     bool
		expectFatal         bool
	}{
		{name: testCompliantTargetCaseNameConstant, exitCodes: []int{0}, expectedInvocations: 1, expectedChanged: false},
		{name: testViolatingTargetCaseNameConstant, exitCodes: []int{1, 0}, expectedInvocations: 2, expectedChanged: true},
		{name: testRewriteFailureCaseNameConstant, exitCodes: []int{1, testFormatterFatalRewriteCodeConstant}, expectedInvocations: 2, expectFatal: true},
		{name: testCheckFailureCaseNameConstant, exitCodes: []int{2}, expectedInvocations: 1, expectFatal: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			toolExecutor := &scriptedToolExecutor{exitCodes: testCase.exitCodes}
			formatter, constructionError := formatters.NewBlackFormatter(toolExecutor, checktool.ToolOverride{}, testFormatterTimeoutConstant)
			require.NoError(testInstance, constructionError)

			formatResult, formatError := formatter.Format(context.Background(), testFormatterTargetFileNameConstant, nil, nil)

			require.Len(testInstance, toolExecutor.executedCommands, testCase.expectedInvocations)

			if testCase.expectFatal {
				require.Error(testInstance, formatError)
				executionFailure := checktool.ToolExecutionError{}
				require.ErrorAs(testInstance, formatError, &executionFailure)
				return
			}

			require.NoError(testInstance, formatError)
			require.True(testInstance, formatResult.Valid)
			require.NotNil(testInstance, formatResult.Changed)
			require.Equal(testInstance, testCase.expectedChanged, *formatResult.Changed)
		})
	}
}

func TestBlackFormatterCheckUsesNonDestructiveArguments(testInstance *testing.T) {
	toolExecutor := &scriptedToolExecutor{exitCodes: []int{1}}
	formatter, constructionError := formatters.NewBlackFormatter(toolExecutor, checktool.ToolOverride{}, testFormatterTimeoutConstant)
	require.NoError(testInstance, constructionError)

	checkResult, checkError := formatter.Check(context.Background(), testFormatterTargetFileNameConstant, nil, nil)
	require.NoError(testInstance, checkError)
	require.False(testInstance, checkResult.Valid)
	require.Nil(testInstance, checkResult.Changed)

	require.Len(testInstance, toolExecutor.executedCommands, 1)
	require.Equal(testInstance,
		[]string{"black", "--check", testFormatterTargetFileNameConstant},
		toolExecutor.executedCommands[0].ConstructedTokens(),
	)
}

func TestIsortFormatterRewriteDropsCheckArguments(testInstance *testing.T) {
	toolExecutor := &scriptedToolExecutor{exitCodes: []int{1, 0}}
	formatter, constructionError := formatters.NewIsortFormatter(toolExecutor, checktool.ToolOverride{}, testFormatterTimeoutConstant)
	require.NoError(testInstance, constructionError)

	formatResult, formatError := formatter.Format(context.Background(), testFormatterTargetFileNameConstant, nil, nil)
	require.NoError(testInstance, formatError)
	require.True(testInstance, formatResult.Valid)

	require.Len(testInstance, toolExecutor.executedCommands, 2)
	require.Equal(testInstance,
		[]string{"isort", "--check-only", testFormatterTargetFileNameConstant},
		toolExecutor.executedCommands[0].ConstructedTokens(),
	)
	require.Equal(testInstance,
		[]string{"isort", testFormatterTargetFileNameConstant},
		toolExecutor.executedCommands[1].ConstructedTokens(),
	)
}

func TestFormatterRequiresExecutor(testInstance *testing.T) {
	_, constructionError := formatters.NewIsortFormatter(nil, checktool.ToolOverride{}, testFormatterTimeoutConstant)
	require.Error(testInstance, constructionError)
}
