package course

import (
	"context"

	"inventory-sync/core/jobrun"
	"inventory-sync/core/pipeline"
	"inventory-sync/core/reconcile"

	"go.uber.org/zap"
)

// RunReader reads recorded runs.
type RunReader interface {
	Last(ctx context.Context, jobName string) (*jobrun.JobRun, error)
}

// Service exposes the course job to the HTTP layer.
type Service struct {
	job    *pipeline.Job
	runs   RunReader
	logger *zap.Logger
}

// NewService creates a new course service. runs may be nil.
func NewService(job *pipeline.Job, runs RunReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{job: job, runs: runs, logger: logger}
}

// Sync runs the job once.
func (s *Service) Sync(ctx context.Context) (*pipeline.RunResult, error) {
	return s.job.Run(ctx)
}

// Plan returns what a sync would change right now.
func (s *Service) Plan(ctx context.Context) (reconcile.PlanSummary, error) {
	plan, err := s.job.Plan(ctx)
	if err != nil {
		return reconcile.PlanSummary{}, err
	}
	return plan.Summary, nil
}

// Last returns the most recent recorded run.
func (s *Service) Last(ctx context.Context) (*jobrun.JobRun, error) {
	if s.runs == nil {
		return nil, jobrun.ErrNoRuns
	}
	return s.runs.Last(ctx, JobName)
}
