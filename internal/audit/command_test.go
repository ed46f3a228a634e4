package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/audit"
	"github.com/temirov/checkup/internal/checktool"
	"github.com/temirov/checkup/internal/execshell"
	"github.com/temirov/checkup/internal/report"
)

const (
	testCleanRunCaseNameConstant    = "clean_run_succeeds"
	testFindingsRunCaseNameConstant = "findings_fail_after_report"
	testFatalRunCaseNameConstant    = "tool_failure_aborts_without_report"
	testTargetFileNameConstant      = "module.py"
	testReportFileNameConstant      = "audit_report.json"
)

type fixedExitExecutor struct {
	exitCode         int
	executedCommands []execshell.ShellCommand
}

func (executor *fixedExitExecutor) Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, command)
	return execshell.ExecutionResult{
		ConstructedTokens: command.ConstructedTokens(),
		CapturedOutput:    command.Details.CaptureOutput,
		ExitCode:          executor.exitCode,
	}, nil
}

func testConfiguration(reportPath string) audit.CommandConfiguration {
	configuration := audit.DefaultCommandConfiguration()
	configuration.Output = reportPath
	configuration.CommandPrefix = nil
	return configuration
}

func TestAuditCommandRunOutcomes(testInstance *testing.T) {
	testCases := []struct {
		name          string
		exitCode      int
		expectFailure bool
		expectFatal   bool
		expectReport  bool
	}{
		{name: testCleanRunCaseNameConstant, exitCode: 0, expectReport: true},
		{name: testFindingsRunCaseNameConstant, exitCode: 1, expectFailure: true, expectReport: true},
		{name: testFatalRunCaseNameConstant, exitCode: 2, expectFatal: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			workingDirectory := testInstance.TempDir()
			targetPath := filepath.Join(workingDirectory, testTargetFileNameConstant)
			require.NoError(testInstance, os.WriteFile(targetPath, []byte("content\n"), 0o644))
			reportPath := filepath.Join(workingDirectory, testReportFileNameConstant)

			toolExecutor := &fixedExitExecutor{exitCode: testCase.exitCode}
			builder := audit.CommandBuilder{
				LoggerProvider: zap.NewNop,
				ConfigurationProvider: func() audit.CommandConfiguration {
					return testConfiguration(reportPath)
				},
				ToolExecutor: toolExecutor,
			}

			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			outputBuffer := &bytes.Buffer{}
			command.SetOut(outputBuffer)
			command.SetErr(outputBuffer)
			command.SetArgs([]string{targetPath})

			executionError := command.Execute()

			if testCase.expectFatal {
				require.Error(testInstance, executionError)
				executionFailure := checktool.ToolExecutionError{}
				require.ErrorAs(testInstance, executionError, &executionFailure)
				require.NoFileExists(testInstance, reportPath)
				return
			}

			if testCase.expectFailure {
				require.Error(testInstance, executionError)
				runFailure := report.RunFailureError{}
				require.ErrorAs(testInstance, executionError, &runFailure)
				require.Equal(testInstance, reportPath, runFailure.ReportPath)
			} else {
				require.NoError(testInstance, executionError)
			}

			require.FileExists(testInstance, reportPath)

			reportContent, readError := os.ReadFile(reportPath)
			require.NoError(testInstance, readError)

			var decodedReport map[string]map[string]checktool.SerializedResult
			require.NoError(testInstance, json.Unmarshal(reportContent, &decodedReport))

			absoluteTarget, absoluteError := filepath.Abs(targetPath)
			require.NoError(testInstance, absoluteError)
			require.Contains(testInstance, decodedReport, absoluteTarget)
			require.Contains(testInstance, decodedReport[absoluteTarget], "flake8")
			require.Contains(testInstance, decodedReport[absoluteTarget], "pylint")
		})
	}
}

func TestAuditCommandSelectsSingleAuditor(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	targetPath := filepath.Join(workingDirectory, testTargetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(targetPath, []byte("content\n"), 0o644))
	reportPath := filepath.Join(workingDirectory, testReportFileNameConstant)

	toolExecutor := &fixedExitExecutor{}
	builder := audit.CommandBuilder{
		LoggerProvider: zap.NewNop,
		ConfigurationProvider: func() audit.CommandConfiguration {
			return testConfiguration(reportPath)
		},
		ToolExecutor: toolExecutor,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{"--auditor", "flake8", targetPath})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, toolExecutor.executedCommands, 1)
	require.Equal(testInstance, []string{"flake8", targetPath}, toolExecutor.executedCommands[0].ConstructedTokens())
}

func TestAuditCommandSkipPrefixInvokesToolsDirectly(testInstance *testing.T) {
	testCases := []struct {
		name           string
		skipPrefix     bool
		expectedTokens func(targetPath string) []string
	}{
		{
			name:       "prefix_applied_by_default",
			skipPrefix: false,
			expectedTokens: func(targetPath string) []string {
				return []string{"mise", "exec", "--", "flake8", targetPath}
			},
		},
		{
			name:       "skip_prefix_drops_configured_prefix",
			skipPrefix: true,
			expectedTokens: func(targetPath string) []string {
				return []string{"flake8", targetPath}
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			workingDirectory := testInstance.TempDir()
			targetPath := filepath.Join(workingDirectory, testTargetFileNameConstant)
			require.NoError(testInstance, os.WriteFile(targetPath, []byte("content\n"), 0o644))
			reportPath := filepath.Join(workingDirectory, testReportFileNameConstant)

			toolExecutor := &fixedExitExecutor{}
			builder := audit.CommandBuilder{
				LoggerProvider: zap.NewNop,
				ConfigurationProvider: func() audit.CommandConfiguration {
					configuration := audit.DefaultCommandConfiguration()
					configuration.Output = reportPath
					return configuration
				},
				ToolExecutor: toolExecutor,
			}

			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			commandArguments := []string{"--auditor", "flake8", targetPath}
			if testCase.skipPrefix {
				commandArguments = append([]string{"--skip-prefix"}, commandArguments...)
			}
			command.SetArgs(commandArguments)

			require.NoError(testInstance, command.Execute())
			require.Len(testInstance, toolExecutor.executedCommands, 1)
			require.Equal(testInstance, testCase.expectedTokens(targetPath), toolExecutor.executedCommands[0].ConstructedTokens())
		})
	}
}

func TestAuditCommandRejectsUnknownAuditor(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	targetPath := filepath.Join(workingDirectory, testTargetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(targetPath, []byte("content\n"), 0o644))

	builder := audit.CommandBuilder{
		LoggerProvider: zap.NewNop,
		ConfigurationProvider: func() audit.CommandConfiguration {
			return testConfiguration(filepath.Join(workingDirectory, testReportFileNameConstant))
		},
		ToolExecutor: &fixedExitExecutor{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{"--auditor", "eslint", targetPath})

	require.Error(testInstance, command.Execute())
}

func TestAuditCommandFailsOnMissingTarget(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	reportPath := filepath.Join(workingDirectory, testReportFileNameConstant)

	builder := audit.CommandBuilder{
		LoggerProvider: zap.NewNop,
		ConfigurationProvider: func() audit.CommandConfiguration {
			return testConfiguration(reportPath)
		},
		ToolExecutor: &fixedExitExecutor{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{filepath.Join(workingDirectory, "missing.py")})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	missingTarget := checktool.TargetNotFoundError{}
	require.ErrorAs(testInstance, executionError, &missingTarget)
	require.NoFileExists(testInstance, reportPath)
}

func TestAuditCommandDefaultsTargetsToProjectRoot(testInstance *testing.T) {
	projectRoot := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(projectRoot, ".git"), 0o755))
	nestedDirectory := filepath.Join(projectRoot, "src")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))
	reportPath := filepath.Join(projectRoot, testReportFileNameConstant)

	toolExecutor := &fixedExitExecutor{}
	builder := audit.CommandBuilder{
		LoggerProvider: zap.NewNop,
		ConfigurationProvider: func() audit.CommandConfiguration {
			return testConfiguration(reportPath)
		},
		ToolExecutor:     toolExecutor,
		WorkingDirectory: nestedDirectory,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, toolExecutor.executedCommands, 2)
	require.Equal(testInstance, []string{"flake8", projectRoot}, toolExecutor.executedCommands[0].ConstructedTokens())
}
