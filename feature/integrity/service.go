package integrity

import (
	"context"

	"inventory-sync/core/jobrun"
	"inventory-sync/core/snapshot"
	"inventory-sync/core/storage"
	"inventory-sync/feature/course/models"
	"inventory-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models returns the warehouse models whose tables are checked.
func Models() []any {
	return []any{models.Course{}, jobrun.JobRun{}, jobrun.DataSourceStatus{}}
}

// SnapshotTables returns the tables expected to have snapshots.
func SnapshotTables() []string {
	return []string{models.Course{}.TableName()}
}

// Service handles integrity checks.
type Service struct {
	client    storage.Client
	bucket    string
	region    string
	snapshots *snapshot.Store
	db        *gorm.DB
	logger    *zap.Logger
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket, region string, snapshots *snapshot.Store, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		region:    region,
		snapshots: snapshots,
		db:        db,
		logger:    logger,
	}
}

// CheckSchema validates the warehouse tables against the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, Models()...)
}

// CheckSnapshots reports the newest snapshot of every synced table.
func (s *Service) CheckSnapshots(ctx context.Context) (*checks.SnapshotReport, error) {
	return checks.CheckSnapshots(ctx, s.client, s.bucket, s.snapshots, SnapshotTables())
}

// FixSnapshots creates the snapshot bucket.
func (s *Service) FixSnapshots(ctx context.Context) error {
	return checks.FixBucket(ctx, s.client, s.bucket, s.region, s.logger)
}

// CheckAll runs every check and collects the results by name.
func (s *Service) CheckAll(ctx context.Context) map[string]any {
	report := make(map[string]any)

	if schemaReport, err := s.CheckSchema(); err != nil {
		report["schema"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schemaReport
	}

	if snapReport, err := s.CheckSnapshots(ctx); err != nil {
		report["snapshots"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["snapshots"] = snapReport
	}

	return report
}
