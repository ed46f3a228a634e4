package format

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/checktool"
	"github.com/temirov/checkup/internal/checktool/builtin"
	"github.com/temirov/checkup/internal/execshell"
	"github.com/temirov/checkup/internal/orchestrate"
	"github.com/temirov/checkup/internal/project"
	"github.com/temirov/checkup/internal/ui"
	flagutils "github.com/temirov/checkup/internal/utils/flags"
)

const (
	commandUseConstant              = "format [targets...]"
	commandShortDescriptionConstant = "Rewrite targets with the selected formatters"
	commandLongDescriptionConstant  = "Format checks each target with the selected formatters and rewrites the ones that need it, streaming per-target results into a report. With --check no target is rewritten. Without targets the enclosing project root is formatted."

	flagFormatterNameConstant        = "formatter"
	flagFormatterDescriptionConstant = "Formatter to run."
	flagOutputNameConstant           = "output"
	flagOutputUsageConstant          = "Path of the JSON report to write."
	flagWorkersNameConstant          = "workers"
	flagWorkersUsageConstant         = "Maximum number of tool processes to run concurrently."
	flagCheckNameConstant            = "check"
	flagCheckUsageConstant           = "Verify formatting without rewriting any target."
	flagSkipPrefixNameConstant       = "skip-prefix"
	flagSkipPrefixUsageConstant      = "Invoke the tools directly without the configured command prefix."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persistent configuration for the format command.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-oriented logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the format cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ToolExecutor                 checktool.ToolCommandExecutor
	WorkingDirectory             string
}

// Build constructs the cobra command for format runs.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	formatterChoices := append([]string{checktool.AllToolsSelectionName}, builtin.BuiltinFormatterNames...)
	command.Flags().String(flagFormatterNameConstant, "", flagutils.FormatChoiceUsage(defaults.Formatter, formatterChoices, flagFormatterDescriptionConstant))
	command.Flags().String(flagOutputNameConstant, "", flagOutputUsageConstant)
	command.Flags().Int(flagWorkersNameConstant, 0, flagWorkersUsageConstant)
	command.Flags().Bool(flagCheckNameConstant, false, flagCheckUsageConstant)
	command.Flags().Bool(flagSkipPrefixNameConstant, false, flagSkipPrefixUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration().sanitize()

	if command.Flags().Changed(flagFormatterNameConstant) {
		flagValue, _ := command.Flags().GetString(flagFormatterNameConstant)
		configuration.Formatter = flagValue
	}
	if command.Flags().Changed(flagOutputNameConstant) {
		flagValue, _ := command.Flags().GetString(flagOutputNameConstant)
		configuration.Output = flagValue
	}
	if command.Flags().Changed(flagWorkersNameConstant) {
		flagValue, _ := command.Flags().GetInt(flagWorkersNameConstant)
		configuration.WorkerCount = flagValue
	}
	configuration = configuration.sanitize()

	if skipPrefix, _ := command.Flags().GetBool(flagSkipPrefixNameConstant); skipPrefix {
		configuration.CommandPrefix = nil
	}

	operation := checktool.FormatterOperationFormat
	if checkOnly, _ := command.Flags().GetBool(flagCheckNameConstant); checkOnly {
		operation = checktool.FormatterOperationCheck
	}

	logger := builder.resolveLogger()

	toolTimeout := time.Duration(configuration.ToolTimeoutSeconds) * time.Second
	toolExecutor, executorError := builder.resolveToolExecutor(logger, toolTimeout)
	if executorError != nil {
		return executorError
	}

	manifest, manifestError := builder.loadManifest(configuration)
	if manifestError != nil {
		return manifestError
	}

	registry, registryError := builtin.NewDefaultRegistry(toolExecutor, manifest, toolTimeout)
	if registryError != nil {
		return registryError
	}

	selectedFormatters, selectionError := registry.ResolveFormatters(configuration.Formatter)
	if selectionError != nil {
		return selectionError
	}

	targetPaths, targetError := builder.resolveTargets(arguments)
	if targetError != nil {
		return targetError
	}

	service := NewService(logger, orchestrate.NewService(logger), command.OutOrStdout())
	return service.Run(command.Context(), RunOptions{
		Formatters: selectedFormatters,
		Operation:  operation,
		Targets:    targetPaths,
		Orchestration: orchestrate.Options{
			CommandPrefix: configuration.CommandPrefix,
			CommandSuffix: configuration.CommandSuffix,
			WorkerCount:   configuration.WorkerCount,
		},
		ReportPath: configuration.Output,
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveToolExecutor(logger *zap.Logger, toolTimeout time.Duration) (checktool.ToolCommandExecutor, error) {
	if builder.ToolExecutor != nil {
		return builder.ToolExecutor, nil
	}

	executorOptions := []execshell.ExecutorOption{execshell.WithDefaultTimeout(toolTimeout)}
	if builder.humanReadableLoggingEnabled() {
		executorOptions = append(executorOptions, execshell.WithEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}

	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), executorOptions...)
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) loadManifest(configuration CommandConfiguration) (checktool.Manifest, error) {
	if len(configuration.ToolsManifest) == 0 {
		return checktool.Manifest{}, nil
	}
	return checktool.LoadManifest(configuration.ToolsManifest, builtin.BuiltinToolNames)
}

func (builder *CommandBuilder) resolveTargets(arguments []string) ([]string, error) {
	if len(arguments) > 0 {
		return append([]string(nil), arguments...), nil
	}

	startDirectory := builder.WorkingDirectory
	if len(startDirectory) == 0 {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return nil, workingDirectoryError
		}
		startDirectory = workingDirectory
	}

	projectRoot, rootError := project.FindRoot(startDirectory)
	if rootError != nil {
		return nil, rootError
	}
	return []string{projectRoot}, nil
}
