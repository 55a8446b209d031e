package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inventory-sync/core/fetch"
	"inventory-sync/core/jobrun"
	"inventory-sync/core/logger"
	"inventory-sync/core/normalize"
	"inventory-sync/core/reconcile"
	"inventory-sync/core/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRunInProgress is returned by Run while another run of the same job is active.
var ErrRunInProgress = errors.New("a run is already in progress")

// ErrRunDeclined is returned when an Approver rejects the plan of a run.
var ErrRunDeclined = errors.New("run declined")

// Approver inspects the plan of a run before anything is written, snapshots
// included. Returning false ends the run with ErrRunDeclined.
type Approver func(plan *reconcile.Plan) bool

// PageFetcher returns every page of the source or fails as a whole.
type PageFetcher interface {
	FetchAll(ctx context.Context) ([]*fetch.Page, error)
}

// Snapshotter saves and restores copies of the persisted set.
type Snapshotter interface {
	Save(ctx context.Context, table, identityField string, records []map[string]any) (string, error)
	Load(ctx context.Context, key string) (*snapshot.Document, error)
	Latest(ctx context.Context, table string) (string, error)
	Prune(ctx context.Context, table string, keep int) (int, error)
}

// RunRecorder persists the outcome of runs.
type RunRecorder interface {
	Record(ctx context.Context, e jobrun.Entry) (*jobrun.JobRun, error)
}

// Job wires the components of one sync job.
type Job struct {
	// Name identifies the job in logs and run records.
	Name string
	// SourceName is recorded as the data source of successful runs.
	SourceName string

	Fetcher    PageFetcher
	Normalizer *normalize.Normalizer
	Reconciler *reconcile.Reconciler
	Store      reconcile.Store

	// Snapshots is optional. When set, the store must implement reconcile.Exporter.
	Snapshots    Snapshotter
	SnapshotKeep int

	// Runs is optional.
	Runs RunRecorder

	Logger *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

// RunResult is the outcome of one run.
type RunResult struct {
	RunID       string                `json:"run_id"`
	Job         string                `json:"job"`
	Pages       int                   `json:"pages"`
	Fetched     int                   `json:"fetched"`
	SnapshotKey string                `json:"snapshot_key,omitempty"`
	Plan        reconcile.PlanSummary `json:"plan"`
	Report      reconcile.Report      `json:"report"`
	StartedAt   time.Time             `json:"started_at"`
	FinishedAt  time.Time             `json:"finished_at"`
}

func (j *Job) clock() time.Time {
	if j.now != nil {
		return j.now()
	}
	return time.Now()
}

func (j *Job) log() *zap.Logger {
	if j.Logger == nil {
		return zap.NewNop()
	}
	return j.Logger
}

// Run performs one sync. On a reconcile failure the result carries the partial
// report and the error is the *reconcile.PhaseError.
func (j *Job) Run(ctx context.Context) (*RunResult, error) {
	return j.RunWithApproval(ctx, nil)
}

// RunWithApproval runs the job like Run but hands the plan to approve before
// the snapshot and the writes. A nil approve accepts every plan. A declined run
// writes nothing and is not recorded.
func (j *Job) RunWithApproval(ctx context.Context, approve Approver) (*RunResult, error) {
	if !j.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer j.mu.Unlock()

	res := &RunResult{
		RunID:     uuid.NewString(),
		Job:       j.Name,
		StartedAt: j.clock(),
	}
	l := logger.WithRun(j.log(), j.Name, res.RunID)
	l.Info("Sync run started")

	err := j.run(ctx, res, l, approve)
	res.FinishedAt = j.clock()
	if errors.Is(err, ErrRunDeclined) {
		l.Warn("Sync run declined; no changes were made")
		return res, err
	}
	j.record(ctx, res, err, l)

	if err != nil {
		l.Error("Sync run failed", zap.Error(err), zap.Duration("took", res.FinishedAt.Sub(res.StartedAt)))
		return res, err
	}
	l.Info("Sync run finished",
		zap.Int("updated", res.Report.Updated),
		zap.Int("inserted", res.Report.Inserted),
		zap.Int("deleted", res.Report.Deleted),
		zap.Duration("took", res.FinishedAt.Sub(res.StartedAt)),
	)
	return res, nil
}

func (j *Job) run(ctx context.Context, res *RunResult, l *zap.Logger, approve Approver) error {
	records, pages, err := j.collect(ctx)
	res.Pages = pages
	res.Fetched = len(records)
	if err != nil {
		return err
	}
	l.Info("Fetched and normalized records", zap.Int("pages", pages), zap.Int("count", len(records)))

	res.Report = reconcile.Report{Table: j.Reconciler.Spec().Table}
	plan, err := j.Reconciler.Plan(ctx, records, j.Store)
	if err != nil {
		var pe *reconcile.PhaseError
		if errors.As(err, &pe) {
			res.Report.FailedPhase = pe.Phase
		}
		return err
	}
	res.Plan = plan.Summary

	if approve != nil && !approve(plan) {
		return ErrRunDeclined
	}

	if j.Snapshots != nil {
		key, err := j.snapshot(ctx, l)
		if err != nil {
			return err
		}
		res.SnapshotKey = key
	}

	report, err := j.Reconciler.Apply(ctx, plan, j.Store, reconcile.ApplyOptions{})
	res.Report = report
	return err
}

// Plan fetches and normalizes the source and computes the partitions without
// writing anything.
func (j *Job) Plan(ctx context.Context) (*reconcile.Plan, error) {
	records, _, err := j.collect(ctx)
	if err != nil {
		return nil, err
	}
	return j.Reconciler.Plan(ctx, records, j.Store)
}

// Restore reconciles the store back to a snapshot. An empty key selects the
// latest snapshot of the job's table.
func (j *Job) Restore(ctx context.Context, key string) (*RunResult, error) {
	if j.Snapshots == nil {
		return nil, errors.New("snapshots are not configured")
	}
	if !j.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer j.mu.Unlock()

	spec := j.Reconciler.Spec()
	if key == "" {
		latest, err := j.Snapshots.Latest(ctx, spec.Table)
		if err != nil {
			return nil, err
		}
		key = latest
	}

	res := &RunResult{
		RunID:       uuid.NewString(),
		Job:         j.Name + ":restore",
		SnapshotKey: key,
		StartedAt:   j.clock(),
	}
	l := logger.WithRun(j.log(), res.Job, res.RunID).With(zap.String("key", key))
	l.Info("Restore started")

	err := j.restore(ctx, key, spec, res)
	res.FinishedAt = j.clock()
	j.record(ctx, res, err, l)
	if err != nil {
		l.Error("Restore failed", zap.Error(err))
		return res, err
	}
	l.Info("Restore finished", zap.Int("count", res.Fetched))
	return res, nil
}

func (j *Job) restore(ctx context.Context, key string, spec reconcile.Spec, res *RunResult) error {
	doc, err := j.Snapshots.Load(ctx, key)
	if err != nil {
		return err
	}
	if doc.Table != spec.Table {
		return fmt.Errorf("snapshot %s belongs to table %s, not %s", key, doc.Table, spec.Table)
	}

	records, err := normalize.New(spec.Schema.Canonical()).NormalizeAll(doc.Records)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", key, err)
	}
	res.Fetched = len(records)

	report, err := j.Reconciler.Reconcile(ctx, records, j.Store)
	res.Report = report
	return err
}

// collect drains the fetcher and normalizes every record. Any failure aborts
// before the store is touched.
func (j *Job) collect(ctx context.Context) ([]reconcile.Record, int, error) {
	pages, err := j.Fetcher.FetchAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", j.Name, err)
	}

	var raws []fetch.RawRecord
	for _, p := range pages {
		raws = append(raws, p.Records...)
	}

	records, err := j.Normalizer.NormalizeAll(raws)
	if err != nil {
		return nil, len(pages), fmt.Errorf("normalize %s: %w", j.Name, err)
	}
	return records, len(pages), nil
}

func (j *Job) snapshot(ctx context.Context, l *zap.Logger) (string, error) {
	exporter, ok := j.Store.(reconcile.Exporter)
	if !ok {
		return "", fmt.Errorf("store %T cannot export a snapshot", j.Store)
	}
	spec := j.Reconciler.Spec()

	rows, err := exporter.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot %s: %w", spec.Table, err)
	}
	key, err := j.Snapshots.Save(ctx, spec.Table, spec.Schema.Identity(), rows)
	if err != nil {
		return "", fmt.Errorf("snapshot %s: %w", spec.Table, err)
	}

	if j.SnapshotKeep > 0 {
		if _, err := j.Snapshots.Prune(ctx, spec.Table, j.SnapshotKeep); err != nil {
			l.Warn("Failed to prune old snapshots", zap.Error(err))
		}
	}
	return key, nil
}

// record persists the run. A bookkeeping failure is logged and does not change
// the outcome of the run.
func (j *Job) record(ctx context.Context, res *RunResult, runErr error, l *zap.Logger) {
	if j.Runs == nil {
		return
	}
	entry := jobrun.Entry{
		JobName:     res.Job,
		StartedAt:   res.StartedAt,
		FinishedAt:  res.FinishedAt,
		Updated:     res.Report.Updated,
		Inserted:    res.Report.Inserted,
		Deleted:     res.Report.Deleted,
		FailedPhase: string(res.Report.FailedPhase),
		Err:         runErr,
	}
	if runErr == nil && j.SourceName != "" && res.Job == j.Name {
		entry.Sources = map[string]time.Time{j.SourceName: res.FinishedAt}
	}
	if _, err := j.Runs.Record(context.WithoutCancel(ctx), entry); err != nil {
		l.Warn("Failed to record run", zap.Error(err))
	}
}
