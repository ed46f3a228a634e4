package checktool

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// AllToolsSelectionName is the reserved selection meaning "every
	// registered plugin". No plugin may claim it as its own name.
	AllToolsSelectionName = "all"

	missingNameReasonConstant        = "name must not be empty"
	reservedNameReasonConstant       = "name 'all' is reserved"
	invalidNameReasonConstant        = "name must contain only lowercase letters (a-z) and digits (0-9)"
	duplicateNameReasonConstant      = "name already registered in this family"
	unknownSelectionTemplateConstant = "unknown %s %q (registered: %s)"
	registeredNameJoinSeparator      = ", "
)

// Registry exposes the immutable name-to-implementation tables built once per
// process. Lookups require no further validation: every registered name has
// passed the naming rules and is safe as a serialization key.
type Registry struct {
	auditors   map[string]Auditor
	formatters map[string]Formatter
}

// NewRegistry validates every supplied plugin and builds the registry.
// A single invalid plugin fails the whole construction; no partial registry
// is ever returned.
func NewRegistry(auditors []Auditor, formatters []Formatter) (*Registry, error) {
	auditorTable := make(map[string]Auditor, len(auditors))
	for _, auditor := range auditors {
		if validationError := validateRegistration(auditor.Name(), auditorTable); validationError != nil {
			return nil, validationError
		}
		auditorTable[auditor.Name()] = auditor
	}

	formatterTable := make(map[string]Formatter, len(formatters))
	for _, formatter := range formatters {
		if validationError := validateRegistration(formatter.Name(), formatterTable); validationError != nil {
			return nil, validationError
		}
		formatterTable[formatter.Name()] = formatter
	}

	return &Registry{auditors: auditorTable, formatters: formatterTable}, nil
}

func validateRegistration[Implementation any](toolName string, table map[string]Implementation) error {
	if nameError := ValidateToolName(toolName); nameError != nil {
		return nameError
	}
	if _, alreadyRegistered := table[toolName]; alreadyRegistered {
		return RegistrationError{ToolName: toolName, Reason: duplicateNameReasonConstant}
	}
	return nil
}

// ValidateToolName enforces the plugin naming rules: non-empty, lowercase
// ASCII letters and digits only, and never the reserved selection name.
func ValidateToolName(toolName string) error {
	if len(toolName) == 0 {
		return RegistrationError{ToolName: toolName, Reason: missingNameReasonConstant}
	}
	if toolName == AllToolsSelectionName {
		return RegistrationError{ToolName: toolName, Reason: reservedNameReasonConstant}
	}
	for _, nameCharacter := range toolName {
		lowercaseLetter := nameCharacter >= 'a' && nameCharacter <= 'z'
		digit := nameCharacter >= '0' && nameCharacter <= '9'
		if !lowercaseLetter && !digit {
			return RegistrationError{ToolName: toolName, Reason: invalidNameReasonConstant}
		}
	}
	return nil
}

// AuditorNames returns the registered auditor names in sorted order.
func (registry *Registry) AuditorNames() []string {
	return sortedNames(registry.auditors)
}

// FormatterNames returns the registered formatter names in sorted order.
func (registry *Registry) FormatterNames() []string {
	return sortedNames(registry.formatters)
}

// ResolveAuditors expands a selection into concrete auditors. The reserved
// selection name yields every registered auditor in sorted-name order.
func (registry *Registry) ResolveAuditors(selection string) ([]Auditor, error) {
	if selection == AllToolsSelectionName {
		resolved := make([]Auditor, 0, len(registry.auditors))
		for _, auditorName := range registry.AuditorNames() {
			resolved = append(resolved, registry.auditors[auditorName])
		}
		return resolved, nil
	}

	auditor, registered := registry.auditors[selection]
	if !registered {
		return nil, unknownSelectionError("auditor", selection, registry.AuditorNames())
	}
	return []Auditor{auditor}, nil
}

// ResolveFormatters expands a selection into concrete formatters. The
// reserved selection name yields every registered formatter in sorted-name
// order.
func (registry *Registry) ResolveFormatters(selection string) ([]Formatter, error) {
	if selection == AllToolsSelectionName {
		resolved := make([]Formatter, 0, len(registry.formatters))
		for _, formatterName := range registry.FormatterNames() {
			resolved = append(resolved, registry.formatters[formatterName])
		}
		return resolved, nil
	}

	formatter, registered := registry.formatters[selection]
	if !registered {
		return nil, unknownSelectionError("formatter", selection, registry.FormatterNames())
	}
	return []Formatter{formatter}, nil
}

func unknownSelectionError(familyLabel string, selection string, registeredNames []string) error {
	return fmt.Errorf(unknownSelectionTemplateConstant, familyLabel, selection, strings.Join(registeredNames, registeredNameJoinSeparator))
}

func sortedNames[Implementation any](table map[string]Implementation) []string {
	names := make([]string, 0, len(table))
	for registeredName := range table {
		names = append(names, registeredName)
	}
	sort.Strings(names)
	return names
}
