package checktool

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/checkup/internal/execshell"
)

const (
	pathTypeFileStringConstant      = "file"
	pathTypeDirectoryStringConstant = "directory"
)

// PathType records whether a target was a file or a directory when its result was produced.
type PathType string

// Supported path classifications.
const (
	PathTypeFile      PathType = PathType(pathTypeFileStringConstant)
	PathTypeDirectory PathType = PathType(pathTypeDirectoryStringConstant)
)

// CapturedOutput holds the decoded standard streams of a tool invocation.
// A nil pointer marks a stream that produced nothing or was not captured.
type CapturedOutput struct {
	Stdout *string
	Stderr *string
}

// FileResult is the immutable outcome of running one plugin verb against one target.
type FileResult struct {
	// Path is the target path exactly as supplied to the plugin.
	Path string
	// PathType is a snapshot of the filesystem classification taken when the
	// result was created. It is never re-derived.
	PathType PathType
	// Valid reports whether the tool accepted the target as compliant.
	Valid bool
	// Changed reports whether a format operation rewrote the target. It is
	// nil for pure audit and check operations.
	Changed *bool
	// ToolName identifies the plugin that produced the result.
	ToolName string
	// Output carries the captured tool output, or nil when the plugin
	// short-circuited without invoking an external process.
	Output *CapturedOutput
}

// NewFileResult classifies the target path and assembles an immutable result.
func NewFileResult(targetPath string, toolName string, valid bool, changed *bool, output *CapturedOutput) FileResult {
	return FileResult{
		Path:     targetPath,
		PathType: classifyPath(targetPath),
		Valid:    valid,
		Changed:  changed,
		ToolName: toolName,
		Output:   output,
	}
}

func classifyPath(targetPath string) PathType {
	pathInformation, statError := os.Stat(targetPath)
	if statError == nil && pathInformation.IsDir() {
		return PathTypeDirectory
	}
	return PathTypeFile
}

func fileExtension(targetPath string) string {
	return strings.ToLower(filepath.Ext(targetPath))
}

// OutputFromExecution converts an execution result into captured output.
// It returns nil when the command did not capture its streams.
func OutputFromExecution(executionResult execshell.ExecutionResult) *CapturedOutput {
	if !executionResult.CapturedOutput {
		return nil
	}
	return &CapturedOutput{
		Stdout: optionalText(executionResult.StandardOutput),
		Stderr: optionalText(executionResult.StandardError),
	}
}

func optionalText(value string) *string {
	if len(value) == 0 {
		return nil
	}
	return &value
}

// SerializedOutput is the flat JSON form of captured tool output.
type SerializedOutput struct {
	Stdout *string `json:"stdout"`
	Stderr *string `json:"stderr"`
}

// SerializedResult is the flat JSON record a FileResult reduces to for reporting.
type SerializedResult struct {
	Path     string            `json:"path"`
	PathType string            `json:"path_type"`
	Valid    bool              `json:"valid"`
	Changed  *bool             `json:"changed"`
	Output   *SerializedOutput `json:"output"`
}

// Serialize reduces the result to primitive fields with no object references.
func (result FileResult) Serialize() SerializedResult {
	var serializedOutput *SerializedOutput
	if result.Output != nil {
		serializedOutput = &SerializedOutput{Stdout: result.Output.Stdout, Stderr: result.Output.Stderr}
	}
	return SerializedResult{
		Path:     result.Path,
		PathType: string(result.PathType),
		Valid:    result.Valid,
		Changed:  result.Changed,
		Output:   serializedOutput,
	}
}

// ToolCommandExecutor abstracts the shell executor plugins use to run their external tools.
type ToolCommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Auditor is a plugin that inspects targets non-destructively.
type Auditor interface {
	// Name returns the registry key identifying the plugin.
	Name() string
	// IsSupportedFiletype reports whether the plugin understands the target.
	// Directories are always supported.
	IsSupportedFiletype(targetPath string) bool
	// Audit runs the wrapped linter against the target.
	Audit(executionContext context.Context, targetPath string, commandPrefix []string, commandSuffix []string) (FileResult, error)
}

// Formatter is a plugin that can both inspect and rewrite targets.
type Formatter interface {
	// Name returns the registry key identifying the plugin.
	Name() string
	// IsSupportedFiletype reports whether the plugin understands the target.
	// Directories are always supported.
	IsSupportedFiletype(targetPath string) bool
	// Check runs the wrapped formatter non-destructively.
	Check(executionContext context.Context, targetPath string, commandPrefix []string, commandSuffix []string) (FileResult, error)
	// Format rewrites the target when Check reports it invalid.
	Format(executionContext context.Context, targetPath string, commandPrefix []string, commandSuffix []string) (FileResult, error)
}

// FormatterOperation selects the formatter verb an orchestration run invokes.
type FormatterOperation string

// Supported formatter operations.
const (
	FormatterOperationCheck  FormatterOperation = "check"
	FormatterOperationFormat FormatterOperation = "format"
)
