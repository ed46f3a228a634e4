package audit

import "strings"

const (
	defaultAuditorSelectionConstant   = "all"
	defaultReportFileNameConstant     = "audit_report.json"
	defaultWorkerCountConstant        = 1
	defaultToolTimeoutSecondsConstant = 120

	auditorConfigurationKeySuffixConstant            = ".auditor"
	outputConfigurationKeySuffixConstant             = ".output"
	commandPrefixConfigurationKeySuffixConstant      = ".command_prefix"
	commandSuffixConfigurationKeySuffixConstant      = ".command_suffix"
	workerCountConfigurationKeySuffixConstant        = ".worker_count"
	toolTimeoutSecondsConfigurationKeySuffixConstant = ".tool_timeout_seconds"
	toolsManifestConfigurationKeySuffixConstant      = ".tools_manifest"
)

// defaultCommandPrefixTokens route tool invocations through the version
// manager so the project-pinned tool versions run.
var defaultCommandPrefixTokens = []string{"mise", "exec", "--"}

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Auditor            string   `mapstructure:"auditor"`
	Output             string   `mapstructure:"output"`
	CommandPrefix      []string `mapstructure:"command_prefix"`
	CommandSuffix      []string `mapstructure:"command_suffix"`
	WorkerCount        int      `mapstructure:"worker_count"`
	ToolTimeoutSeconds int      `mapstructure:"tool_timeout_seconds"`
	ToolsManifest      string   `mapstructure:"tools_manifest"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Auditor:            defaultAuditorSelectionConstant,
		Output:             defaultReportFileNameConstant,
		CommandPrefix:      append([]string(nil), defaultCommandPrefixTokens...),
		CommandSuffix:      nil,
		WorkerCount:        defaultWorkerCountConstant,
		ToolTimeoutSeconds: defaultToolTimeoutSecondsConstant,
		ToolsManifest:      "",
	}
}

// DefaultConfigurationValues exposes default configuration for registration with the configuration loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + auditorConfigurationKeySuffixConstant:            defaults.Auditor,
		configurationKeyPrefix + outputConfigurationKeySuffixConstant:             defaults.Output,
		configurationKeyPrefix + commandPrefixConfigurationKeySuffixConstant:      defaults.CommandPrefix,
		configurationKeyPrefix + commandSuffixConfigurationKeySuffixConstant:      defaults.CommandSuffix,
		configurationKeyPrefix + workerCountConfigurationKeySuffixConstant:        defaults.WorkerCount,
		configurationKeyPrefix + toolTimeoutSecondsConfigurationKeySuffixConstant: defaults.ToolTimeoutSeconds,
		configurationKeyPrefix + toolsManifestConfigurationKeySuffixConstant:      defaults.ToolsManifest,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Auditor = strings.TrimSpace(configuration.Auditor)
	if len(sanitized.Auditor) == 0 {
		sanitized.Auditor = defaultAuditorSelectionConstant
	}

	sanitized.Output = strings.TrimSpace(configuration.Output)
	if len(sanitized.Output) == 0 {
		sanitized.Output = defaultReportFileNameConstant
	}

	sanitized.CommandPrefix = sanitizeTokens(configuration.CommandPrefix)
	sanitized.CommandSuffix = sanitizeTokens(configuration.CommandSuffix)

	if sanitized.WorkerCount < 1 {
		sanitized.WorkerCount = defaultWorkerCountConstant
	}
	if sanitized.ToolTimeoutSeconds < 1 {
		sanitized.ToolTimeoutSeconds = defaultToolTimeoutSecondsConstant
	}

	sanitized.ToolsManifest = strings.TrimSpace(configuration.ToolsManifest)

	return sanitized
}

func sanitizeTokens(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
