package jobrun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoRuns is returned by Last when a job has never run.
var ErrNoRuns = errors.New("no recorded runs")

// Entry describes a finished run.
type Entry struct {
	JobName     string
	StartedAt   time.Time
	FinishedAt  time.Time
	Updated     int
	Inserted    int
	Deleted     int
	FailedPhase string
	Err         error

	// Sources maps data source names to their data update time. Ignored for
	// failed runs.
	Sources map[string]time.Time
}

// Recorder persists job runs.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger}
}

// Migrate creates or updates the bookkeeping tables.
func (r *Recorder) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&JobRun{}, &DataSourceStatus{}); err != nil {
		return fmt.Errorf("failed to migrate job run tables: %w", err)
	}
	return nil
}

// Record writes a JobRun and, for successful runs, its data source rows in one
// transaction.
func (r *Recorder) Record(ctx context.Context, e Entry) (*JobRun, error) {
	run := &JobRun{
		JobName:     e.JobName,
		StartedAt:   e.StartedAt.UTC(),
		FinishedAt:  e.FinishedAt.UTC(),
		Status:      StatusSucceeded,
		Updated:     e.Updated,
		Inserted:    e.Inserted,
		Deleted:     e.Deleted,
		FailedPhase: e.FailedPhase,
	}
	if e.Err != nil {
		run.Status = StatusFailed
		run.Error = e.Err.Error()
	} else {
		for name, at := range e.Sources {
			run.DataSourceStatus = append(run.DataSourceStatus, DataSourceStatus{
				DataSourceName: name,
				DataUpdatedAt:  at.UTC(),
			})
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(run).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record run of %s: %w", e.JobName, err)
	}

	r.logger.Debug("Recorded job run",
		zap.String("job", run.JobName),
		zap.Uint("id", run.ID),
		zap.String("status", run.Status),
	)
	return run, nil
}

// Last returns the most recent run of a job with its data source rows.
func (r *Recorder) Last(ctx context.Context, jobName string) (*JobRun, error) {
	var run JobRun
	err := r.db.WithContext(ctx).
		Preload("DataSourceStatus").
		Where("job_name = ?", jobName).
		Order("started_at DESC").
		Order("id DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w for job %s", ErrNoRuns, jobName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last run of %s: %w", jobName, err)
	}
	return &run, nil
}
