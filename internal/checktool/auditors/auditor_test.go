package auditors_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/checktool"
	"github.com/temirov/checkup/internal/checktool/auditors"
	"github.com/temirov/checkup/internal/execshell"
)

const (
	testCleanExitCaseNameConstant    = "exit_zero_reports_valid"
	testFindingsExitCaseNameConstant = "exit_one_reports_invalid"
	testToolFailureCaseNameConstant  = "exit_two_is_fatal"
	testTargetFileNameConstant       = "a.py"
	testUnsupportedFileNameConstant  = "notes.txt"
	testPrefixTokenConstant          = "mise"
	testLinterStdoutConstant         = "a.py:1:1: E302 expected 2 blank lines"
	testAuditTimeoutConstant         = 5 * time.Second
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
		StandardOutput:    testLinterStdoutConstant,
		ExitCode:          exitCode,
	}, nil
}

func TestFlakeEightAuditorExitCodeConvention(testInstance *testing.T) {
	testCases := []struct {
		name          string
		exitCode      int
		expectedValid bool
		expectFatal   bool
	}{
		{name: testCleanExitCaseNameConstant, exitCode: 0, expectedValid: true},
		{name: testFindingsExitCaseNameConstant, exitCode: 1, expectedValid: false},
		{name: testToolFailureCaseNameConstant, exitCode: 2, expectFatal: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			toolExecutor := &scriptedToolExecutor{exitCodes: []int{testCase.exitCode}}
			auditor, constructionError := auditors.NewFlakeEightAuditor(toolExecutor, checktool.ToolOverride{}, testAuditTimeoutConstant)
			require.NoError(testInstance, constructionError)

			auditResult, auditError := auditor.Audit(context.Background(), testTargetFileNameConstant, nil, nil)

			if testCase.expectFatal {
				require.Error(testInstance, auditError)
				executionFailure := checktool.ToolExecutionError{}
				require.ErrorAs(testInstance, auditError, &executionFailure)
				require.Equal(testInstance, testCase.exitCode, *executionFailure.ExitCode)
				return
			}

			require.NoError(testInstance, auditError)
			require.Equal(testInstance, testCase.expectedValid, auditResult.Valid)
			require.Nil(testInstance, auditResult.Changed)
			require.NotNil(testInstance, auditResult.Output)
			require.Equal(testInstance, testLinterStdoutConstant, *auditResult.Output.Stdout)
		})
	}
}

func TestPylintAuditorExitCodeBitMask(testInstance *testing.T) {
	testCases := []struct {
		name          string
		exitCode      int
		expectedValid bool
		expectFatal   bool
	}{
		{name: "exit_zero_reports_valid", exitCode: 0, expectedValid: true},
		{name: "fatal_message_bit_reports_invalid", exitCode: 1, expectedValid: false},
		{name: "error_bit_reports_invalid", exitCode: 2, expectedValid: false},
		{name: "warning_bit_reports_invalid", exitCode: 4, expectedValid: false},
		{name: "convention_bit_reports_invalid", exitCode: 16, expectedValid: false},
		{name: "combined_bits_report_invalid", exitCode: 22, expectedValid: false},
		{name: "usage_error_is_fatal", exitCode: 32, expectFatal: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			toolExecutor := &scriptedToolExecutor{exitCodes: []int{testCase.exitCode}}
			auditor, constructionError := auditors.NewPylintAuditor(toolExecutor, checktool.ToolOverride{}, testAuditTimeoutConstant)
			require.NoError(testInstance, constructionError)

			auditResult, auditError := auditor.Audit(context.Background(), testTargetFileNameConstant, nil, nil)

			if testCase.expectFatal {
				require.Error(testInstance, auditError)
				executionFailure := checktool.ToolExecutionError{}
				require.ErrorAs(testInstance, auditError, &executionFailure)
				require.Equal(testInstance, testCase.exitCode, *executionFailure.ExitCode)
				return
			}

			require.NoError(testInstance, auditError)
			require.Equal(testInstance, testCase.expectedValid, auditResult.Valid)
		})
	}
}

func TestFlakeEightAuditorBuildsPrefixedCommand(testInstance *testing.T) {
	toolExecutor := &scriptedToolExecutor{}
	auditor, constructionError := auditors.NewFlakeEightAuditor(toolExecutor, checktool.ToolOverride{}, testAuditTimeoutConstant)
	require.NoError(testInstance, constructionError)

	_, auditError := auditor.Audit(context.Background(), testTargetFileNameConstant, []string{testPrefixTokenConstant, "exec", "--"}, []string{"--max-complexity=10"})
	require.NoError(testInstance, auditError)

	require.Len(testInstance, toolExecutor.executedCommands, 1)
	executedCommand := toolExecutor.executedCommands[0]
	require.Equal(testInstance,
		[]string{testPrefixTokenConstant, "exec", "--", "flake8", testTargetFileNameConstant, "--max-complexity=10"},
		executedCommand.ConstructedTokens(),
	)
	require.True(testInstance, executedCommand.Details.CaptureOutput)
	require.Equal(testInstance, testAuditTimeoutConstant, executedCommand.Details.Timeout)
}

func TestAuditorSupportedFiletypes(testInstance *testing.T) {
	toolExecutor := &scriptedToolExecutor{}
	auditor, constructionError := auditors.NewPylintAuditor(toolExecutor, checktool.ToolOverride{}, testAuditTimeoutConstant)
	require.NoError(testInstance, constructionError)

	require.True(testInstance, auditor.IsSupportedFiletype(testTargetFileNameConstant))
	require.False(testInstance, auditor.IsSupportedFiletype(testUnsupportedFileNameConstant))
	require.True(testInstance, auditor.IsSupportedFiletype(testInstance.TempDir()))
}

func TestAuditorRequiresExecutor(testInstance *testing.T) {
	_, constructionError := auditors.NewFlakeEightAuditor(nil, checktool.ToolOverride{}, testAuditTimeoutConstant)
	require.Error(testInstance, constructionError)
}

func TestAuditorHonorsManifestOverride(testInstance *testing.T) {
	toolExecutor := &scriptedToolExecutor{}
	override := checktool.ToolOverride{ExecutableTokens: []string{"python", "-m", "flake8"}}
	auditor, constructionError := auditors.NewFlakeEightAuditor(toolExecutor, override, testAuditTimeoutConstant)
	require.NoError(testInstance, constructionError)

	_, auditError := auditor.Audit(context.Background(), testTargetFileNameConstant, nil, nil)
	require.NoError(testInstance, auditError)

	require.Len(testInstance, toolExecutor.executedCommands, 1)
	require.Equal(testInstance,
		[]string{"python", "-m", "flake8", testTargetFileNameConstant},
		toolExecutor.executedCommands[0].ConstructedTokens(),
	)
}
