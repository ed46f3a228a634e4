package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configurationKeySegmentSeparator     = "."
	environmentVariableSegmentSeparator  = "_"
	configurationReadFailureTemplate     = "failed to read configuration: %w"
	configurationDecodeFailureTemplate   = "failed to parse configuration: %w"
	embeddedDefaultsMergeFailureTemplate = "failed to merge embedded configuration: %w"
)

// ConfigurationLoader resolves the tool configuration by layering embedded
// defaults, an optional configuration file, and environment overrides, in
// that order of increasing precedence.
type ConfigurationLoader struct {
	configurationName     string
	configurationType     string
	environmentPrefix     string
	searchPaths           []string
	embeddedDefaults      []byte
	embeddedDefaultsType  string
	environmentKeyMapping *strings.Replacer
}

// LoadedConfiguration reports which configuration file, if any, was read.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader that searches the given paths for a
// named configuration file and maps environment variables under the prefix
// onto dotted configuration keys.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName:     configurationName,
		configurationType:     configurationType,
		environmentPrefix:     environmentPrefix,
		searchPaths:           append([]string(nil), searchPaths...),
		environmentKeyMapping: strings.NewReplacer(configurationKeySegmentSeparator, environmentVariableSegmentSeparator),
	}
}

// SetEmbeddedConfiguration installs defaults that are merged beneath every
// user-provided configuration source.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedDefaults = nil
	loader.embeddedDefaultsType = strings.TrimSpace(configurationType)

	if len(configurationData) > 0 {
		loader.embeddedDefaults = append([]byte(nil), configurationData...)
	}
}

// LoadConfiguration populates targetConfiguration from embedded defaults, the
// configuration file at configurationFilePath (or the first file found on the
// search paths), and environment variables. A missing configuration file is
// not an error; defaults and the environment still apply.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if mergeError := loader.mergeEmbeddedDefaults(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, mergeError
	}

	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	if loader.environmentKeyMapping != nil {
		viperInstance.SetEnvKeyReplacer(loader.environmentKeyMapping)
	}
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	if readError := viperInstance.MergeInConfig(); readError != nil {
		var configurationNotFound viper.ConfigFileNotFoundError
		if !errors.As(readError, &configurationNotFound) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadFailureTemplate, readError)
		}
	}

	if decodeError := viperInstance.Unmarshal(targetConfiguration); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeFailureTemplate, decodeError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

func (loader *ConfigurationLoader) mergeEmbeddedDefaults(viperInstance *viper.Viper) error {
	if len(loader.embeddedDefaults) == 0 {
		return nil
	}

	if len(loader.embeddedDefaultsType) > 0 {
		viperInstance.SetConfigType(loader.embeddedDefaultsType)
	}
	mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedDefaults))
	viperInstance.SetConfigType(loader.configurationType)

	if mergeError != nil {
		return fmt.Errorf(embeddedDefaultsMergeFailureTemplate, mergeError)
	}
	return nil
}
