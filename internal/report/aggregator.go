// Package report collects streamed tool results into a serializable run report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/checkup/internal/checktool"
)

const (
	reportFilePermissionsConstant = 0o644
	reportIndentConstant          = "    "
	reportMarshalTemplateConstant = "failed to serialize report: %w"
	reportWriteTemplateConstant   = "failed to write report to %s: %w"
	reportPathResolveTemplate     = "failed to resolve report key for %s: %w"
	trailingNewlineConstant       = "\n"
)

// Aggregator accumulates per-target, per-tool results over the lifetime of a
// run. Keys are absolute target paths so reports from different working
// directories stay comparable.
type Aggregator struct {
	resultsByPath map[string]map[string]checktool.SerializedResult
}

// NewAggregator constructs an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{resultsByPath: make(map[string]map[string]checktool.SerializedResult)}
}

// Add records a single tool result under the absolute form of its target path.
// A later result for the same path and tool replaces the earlier one.
func (aggregator *Aggregator) Add(result checktool.FileResult) error {
	absolutePath, absoluteError := filepath.Abs(result.Path)
	if absoluteError != nil {
		return fmt.Errorf(reportPathResolveTemplate, result.Path, absoluteError)
	}

	toolResults, pathKnown := aggregator.resultsByPath[absolutePath]
	if !pathKnown {
		toolResults = make(map[string]checktool.SerializedResult)
		aggregator.resultsByPath[absolutePath] = toolResults
	}
	toolResults[result.ToolName] = result.Serialize()
	return nil
}

// Success reports whether every recorded result was valid. An empty report is
// successful.
func (aggregator *Aggregator) Success() bool {
	for _, toolResults := range aggregator.resultsByPath {
		for _, recordedResult := range toolResults {
			if !recordedResult.Valid {
				return false
			}
		}
	}
	return true
}

// ResultCount returns the number of recorded results across all targets.
func (aggregator *Aggregator) ResultCount() int {
	recordedCount := 0
	for _, toolResults := range aggregator.resultsByPath {
		recordedCount += len(toolResults)
	}
	return recordedCount
}

// Report returns the accumulated results keyed by absolute target path and tool name.
func (aggregator *Aggregator) Report() map[string]map[string]checktool.SerializedResult {
	return aggregator.resultsByPath
}

// WriteFile serializes the report as indented JSON to the given path.
func (aggregator *Aggregator) WriteFile(reportPath string) error {
	serializedReport, marshalError := json.MarshalIndent(aggregator.resultsByPath, "", reportIndentConstant)
	if marshalError != nil {
		return fmt.Errorf(reportMarshalTemplateConstant, marshalError)
	}

	serializedReport = append(serializedReport, []byte(trailingNewlineConstant)...)
	if writeError := os.WriteFile(reportPath, serializedReport, reportFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(reportWriteTemplateConstant, reportPath, writeError)
	}
	return nil
}
