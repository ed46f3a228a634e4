package report

import (
	"fmt"

	"github.com/temirov/checkup/internal/checktool"
)

const runFailureTemplateConstant = "quality checks failed, see %s"

// RunFailureError reports a completed run in which at least one tool found
// violations. The report file exists and names the offending targets.
type RunFailureError struct {
	ReportPath string
}

// Error points the operator at the written report.
func (failure RunFailureError) Error() string {
	return fmt.Sprintf(runFailureTemplateConstant, failure.ReportPath)
}

// Collect drains a result stream into a fresh aggregator. The wait function
// is consulted after the stream closes; its error is returned unchanged so
// callers can distinguish tool failures from check findings.
func Collect(results <-chan checktool.FileResult, wait func() error) (*Aggregator, error) {
	aggregator := NewAggregator()

	var collectError error
	for streamedResult := range results {
		if collectError != nil {
			continue
		}
		collectError = aggregator.Add(streamedResult)
	}

	waitError := wait()
	if collectError != nil {
		return nil, collectError
	}
	if waitError != nil {
		return nil, waitError
	}

	return aggregator, nil
}
