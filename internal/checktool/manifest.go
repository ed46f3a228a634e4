package checktool

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestReadErrorTemplateConstant     = "failed to read tool manifest: %w"
	manifestParseErrorTemplateConstant    = "failed to parse tool manifest: %w"
	manifestUnknownToolTemplateConstant   = "tool manifest references unknown plugin %q"
	manifestEmptyExecutableReasonTemplate = "tool manifest override for %q has an empty executable token"
	manifestPathRequiredMessageConstant   = "tool manifest path must be provided"
)

// ToolOverride customizes how a built-in plugin invokes its external tool.
// A zero value leaves the plugin defaults untouched.
type ToolOverride struct {
	// ExecutableTokens replaces the plugin's executable and leading arguments.
	ExecutableTokens []string `yaml:"executable"`
	// ExtraArguments are appended after the plugin's own arguments.
	ExtraArguments []string `yaml:"extra_arguments"`
}

// Manifest maps plugin names to invocation overrides loaded from YAML.
type Manifest struct {
	Tools map[string]ToolOverride `yaml:"tools"`
}

// OverrideFor returns the override registered for a plugin name, if any.
func (manifest Manifest) OverrideFor(toolName string) ToolOverride {
	if manifest.Tools == nil {
		return ToolOverride{}
	}
	return manifest.Tools[toolName]
}

// LoadManifest reads and validates a tool manifest file. Every referenced
// plugin name must belong to the supplied known set, and overridden
// executables must not contain empty tokens.
func LoadManifest(manifestPath string, knownToolNames []string) (Manifest, error) {
	trimmedPath := strings.TrimSpace(manifestPath)
	if len(trimmedPath) == 0 {
		return Manifest{}, errors.New(manifestPathRequiredMessageConstant)
	}

	manifestContent, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Manifest{}, fmt.Errorf(manifestReadErrorTemplateConstant, readError)
	}

	var manifest Manifest
	if unmarshalError := yaml.Unmarshal(manifestContent, &manifest); unmarshalError != nil {
		return Manifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
	}

	knownNames := make(map[string]struct{}, len(knownToolNames))
	for _, knownToolName := range knownToolNames {
		knownNames[knownToolName] = struct{}{}
	}

	for referencedToolName, override := range manifest.Tools {
		if _, known := knownNames[referencedToolName]; !known {
			return Manifest{}, fmt.Errorf(manifestUnknownToolTemplateConstant, referencedToolName)
		}
		for _, executableToken := range override.ExecutableTokens {
			if len(strings.TrimSpace(executableToken)) == 0 {
				return Manifest{}, fmt.Errorf(manifestEmptyExecutableReasonTemplate, referencedToolName)
			}
		}
	}

	return manifest, nil
}

// ApplyOverride resolves the executable tokens and extra arguments a plugin
// should use after considering its override.
func ApplyOverride(defaultExecutableTokens []string, override ToolOverride) ([]string, []string) {
	executableTokens := defaultExecutableTokens
	if len(override.ExecutableTokens) > 0 {
		executableTokens = override.ExecutableTokens
	}
	return executableTokens, override.ExtraArguments
}
