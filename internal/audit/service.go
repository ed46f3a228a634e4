package audit

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/checktool"
	"github.com/temirov/checkup/internal/orchestrate"
	"github.com/temirov/checkup/internal/report"
	"github.com/temirov/checkup/internal/utils"
)

const (
	runStartedMessageConstant     = "audit run started"
	runCompletedMessageConstant   = "audit run completed"
	auditorCountFieldNameConstant = "auditor_count"
	targetCountFieldNameConstant  = "target_count"
	resultCountFieldNameConstant  = "result_count"
	reportPathFieldNameConstant   = "report_path"
	successFieldNameConstant      = "success"
	reportSummaryTemplateConstant = "Wrote %d results to %s\n"
)

// RunOptions carries the resolved inputs of a single audit run.
type RunOptions struct {
	Auditors      []checktool.Auditor
	Targets       []string
	Orchestration orchestrate.Options
	ReportPath    string
}

// Service executes audit runs and writes their reports.
type Service struct {
	logger       *zap.Logger
	orchestrator *orchestrate.Service
	output       io.Writer
}

// NewService assembles an audit service around an orchestrator and an output writer.
func NewService(logger *zap.Logger, orchestrator *orchestrate.Service, output io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:       logger,
		orchestrator: orchestrator,
		output:       utils.NewFlushingWriter(output),
	}
}

// Run schedules the selected auditors, aggregates their streamed results, and
// writes the report. A tool failure aborts the run before any report is
// written; check findings surface as a RunFailureError after the report
// exists.
func (service *Service) Run(executionContext context.Context, options RunOptions) error {
	service.logger.Info(runStartedMessageConstant,
		zap.Int(auditorCountFieldNameConstant, len(options.Auditors)),
		zap.Int(targetCountFieldNameConstant, len(options.Targets)),
	)

	results, wait, runError := service.orchestrator.RunAudits(executionContext, options.Auditors, options.Targets, options.Orchestration)
	if runError != nil {
		return runError
	}

	aggregator, collectError := report.Collect(results, wait)
	if collectError != nil {
		return collectError
	}

	if writeError := aggregator.WriteFile(options.ReportPath); writeError != nil {
		return writeError
	}

	service.logger.Info(runCompletedMessageConstant,
		zap.Int(resultCountFieldNameConstant, aggregator.ResultCount()),
		zap.String(reportPathFieldNameConstant, options.ReportPath),
		zap.Bool(successFieldNameConstant, aggregator.Success()),
	)

	if service.output != nil {
		fmt.Fprintf(service.output, reportSummaryTemplateConstant, aggregator.ResultCount(), options.ReportPath)
	}

	if !aggregator.Success() {
		return report.RunFailureError{ReportPath: options.ReportPath}
	}
	return nil
}
