package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	systemShellExecutableConstant          = "/bin/sh"
	systemShellCommandFlagConstant         = "-c"
	emptyCommandMessageConstant            = "command has no tokens to execute"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command using os/exec.
//
// An exit-status failure is translated into an ExecutionResult carrying the
// exit code; every other failure, such as a missing executable, is returned
// as an error without a result.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	constructedTokens := command.ConstructedTokens()
	if len(constructedTokens) == 0 {
		return ExecutionResult{}, errors.New(emptyCommandMessageConstant)
	}

	var executable *exec.Cmd
	if command.Details.UseShell {
		executable = exec.CommandContext(executionContext, systemShellExecutableConstant, systemShellCommandFlagConstant, command.ShellString())
	} else {
		executable = exec.CommandContext(executionContext, constructedTokens[0], constructedTokens[1:]...)
	}

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	if command.Details.CaptureOutput {
		executable.Stdout = &standardOutputBuffer
		executable.Stderr = &standardErrorBuffer
	} else {
		executable.Stdout = os.Stdout
		executable.Stderr = os.Stderr
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return runner.buildResult(command, constructedTokens, standardOutputBuffer.String(), standardErrorBuffer.String(), exitError.ExitCode()), nil
		}
		return ExecutionResult{}, runError
	}

	return runner.buildResult(command, constructedTokens, standardOutputBuffer.String(), standardErrorBuffer.String(), 0), nil
}

func (runner *OSCommandRunner) buildResult(command ShellCommand, constructedTokens []string, standardOutput string, standardError string, exitCode int) ExecutionResult {
	return ExecutionResult{
		OriginalTokens:    command.OriginalTokens(),
		ConstructedTokens: constructedTokens,
		UsedShell:         command.Details.UseShell,
		CapturedOutput:    command.Details.CaptureOutput,
		StandardOutput:    standardOutput,
		StandardError:     standardError,
		ExitCode:          exitCode,
	}
}
