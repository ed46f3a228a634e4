// Package builtin assembles the registry of plugins shipped with the binary.
package builtin

import (
	"time"

	"github.com/temirov/checkup/internal/checktool"
	"github.com/temirov/checkup/internal/checktool/auditors"
	"github.com/temirov/checkup/internal/checktool/formatters"
)

// Plugin names shipped with the binary, split by family.
var (
	BuiltinAuditorNames   = []string{"flake8", "pylint"}
	BuiltinFormatterNames = []string{"black", "isort"}
)

// BuiltinToolNames lists every plugin name the default registry registers.
var BuiltinToolNames = append(append([]string(nil), BuiltinAuditorNames...), BuiltinFormatterNames...)

// NewDefaultRegistry builds the registry of shipped plugins, applying any
// manifest overrides and giving every plugin the same execution timeout.
func NewDefaultRegistry(executor checktool.ToolCommandExecutor, manifest checktool.Manifest, toolTimeout time.Duration) (*checktool.Registry, error) {
	flakeEightAuditor, flakeEightError := auditors.NewFlakeEightAuditor(executor, manifest.OverrideFor("flake8"), toolTimeout)
	if flakeEightError != nil {
		return nil, flakeEightError
	}

	pylintAuditor, pylintError := auditors.NewPylintAuditor(executor, manifest.OverrideFor("pylint"), toolTimeout)
	if pylintError != nil {
		return nil, pylintError
	}

	blackFormatter, blackError := formatters.NewBlackFormatter(executor, manifest.OverrideFor("black"), toolTimeout)
	if blackError != nil {
		return nil, blackError
	}

	isortFormatter, isortError := formatters.NewIsortFormatter(executor, manifest.OverrideFor("isort"), toolTimeout)
	if isortError != nil {
		return nil, isortError
	}

	return checktool.NewRegistry(
		[]checktool.Auditor{flakeEightAuditor, pylintAuditor},
		[]checktool.Formatter{blackFormatter, isortFormatter},
	)
}
