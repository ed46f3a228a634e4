package orchestrate

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/checkup/internal/checktool"
)

const (
	defaultWorkerCountConstant = 1

	skippedTargetMessageConstant              = "Skipping unsupported target"
	toolFieldNameConstant                     = "tool"
	targetFieldNameConstant                   = "target"
	unknownFormatterOperationTemplateConstant = "unknown formatter operation %q"
)

// Options tunes how an orchestration run constructs and schedules tool commands.
type Options struct {
	// CommandPrefix tokens are prepended to every tool invocation.
	CommandPrefix []string
	// CommandSuffix tokens are appended after the target path.
	CommandSuffix []string
	// WorkerCount bounds concurrent tool processes. Values below one fall
	// back to sequential execution.
	WorkerCount int
}

func (options Options) workerCount() int {
	if options.WorkerCount < 1 {
		return defaultWorkerCountConstant
	}
	return options.WorkerCount
}

// Service schedules plugin invocations across targets. Results stream over a
// channel as each invocation finishes; a tool failure cancels the remaining
// schedule while invocations already running finish.
type Service struct {
	logger *zap.Logger
}

// NewService constructs an orchestration service logging through the provided logger.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

type plannedInvocation struct {
	toolName   string
	targetPath string
	invoke     func(executionContext context.Context) (checktool.FileResult, error)
}

// RunAudits schedules every auditor against every supported target. All
// targets must exist before any tool runs; a missing target fails the run
// synchronously. The returned wait function reports the first tool failure
// after the results channel closes.
func (service *Service) RunAudits(executionContext context.Context, selectedAuditors []checktool.Auditor, targetPaths []string, options Options) (<-chan checktool.FileResult, func() error, error) {
	if validationError := validateTargetsExist(targetPaths); validationError != nil {
		return nil, nil, validationError
	}

	invocations := make([]plannedInvocation, 0, len(selectedAuditors)*len(targetPaths))
	for _, selectedAuditor := range selectedAuditors {
		for _, targetPath := range targetPaths {
			if !selectedAuditor.IsSupportedFiletype(targetPath) {
				service.logSkippedTarget(selectedAuditor.Name(), targetPath)
				continue
			}
			auditor := selectedAuditor
			boundTargetPath := targetPath
			invocations = append(invocations, plannedInvocation{
				toolName:   auditor.Name(),
				targetPath: boundTargetPath,
				invoke: func(invocationContext context.Context) (checktool.FileResult, error) {
					return auditor.Audit(invocationContext, boundTargetPath, options.CommandPrefix, options.CommandSuffix)
				},
			})
		}
	}

	results, wait := service.dispatch(executionContext, invocations, options.workerCount())
	return results, wait, nil
}

// RunFormatters schedules every formatter against every supported target
// using the requested operation verb. Semantics otherwise match RunAudits.
func (service *Service) RunFormatters(executionContext context.Context, selectedFormatters []checktool.Formatter, operation checktool.FormatterOperation, targetPaths []string, options Options) (<-chan checktool.FileResult, func() error, error) {
	if operation != checktool.FormatterOperationCheck && operation != checktool.FormatterOperationFormat {
		return nil, nil, fmt.Errorf(unknownFormatterOperationTemplateConstant, operation)
	}
	if validationError := validateTargetsExist(targetPaths); validationError != nil {
		return nil, nil, validationError
	}

	invocations := make([]plannedInvocation, 0, len(selectedFormatters)*len(targetPaths))
	for _, selectedFormatter := range selectedFormatters {
		for _, targetPath := range targetPaths {
			if !selectedFormatter.IsSupportedFiletype(targetPath) {
				service.logSkippedTarget(selectedFormatter.Name(), targetPath)
				continue
			}
			formatter := selectedFormatter
			boundTargetPath := targetPath
			invocations = append(invocations, plannedInvocation{
				toolName:   formatter.Name(),
				targetPath: boundTargetPath,
				invoke: func(invocationContext context.Context) (checktool.FileResult, error) {
					if operation == checktool.FormatterOperationFormat {
						return formatter.Format(invocationContext, boundTargetPath, options.CommandPrefix, options.CommandSuffix)
					}
					return formatter.Check(invocationContext, boundTargetPath, options.CommandPrefix, options.CommandSuffix)
				},
			})
		}
	}

	results, wait := service.dispatch(executionContext, invocations, options.workerCount())
	return results, wait, nil
}

func (service *Service) dispatch(executionContext context.Context, invocations []plannedInvocation, workerCount int) (<-chan checktool.FileResult, func() error) {
	results := make(chan checktool.FileResult)
	completion := make(chan error, 1)

	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(workerCount)

	go func() {
		for _, invocation := range invocations {
			scheduledInvocation := invocation
			group.Go(func() error {
				if contextError := groupContext.Err(); contextError != nil {
					return contextError
				}

				invocationResult, invocationError := scheduledInvocation.invoke(groupContext)
				if invocationError != nil {
					return invocationError
				}

				select {
				case results <- invocationResult:
					return nil
				case <-groupContext.Done():
					return groupContext.Err()
				}
			})
		}

		waitError := group.Wait()
		close(results)
		completion <- waitError
	}()

	return results, func() error { return <-completion }
}

func (service *Service) logSkippedTarget(toolName string, targetPath string) {
	service.logger.Warn(skippedTargetMessageConstant,
		zap.String(toolFieldNameConstant, toolName),
		zap.String(targetFieldNameConstant, targetPath),
	)
}

func validateTargetsExist(targetPaths []string) error {
	for _, targetPath := range targetPaths {
		if _, statError := os.Stat(targetPath); statError != nil {
			return checktool.TargetNotFoundError{Path: targetPath}
		}
	}
	return nil
}
