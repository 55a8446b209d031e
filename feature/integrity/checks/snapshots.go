package checks

import (
	"context"
	"errors"
	"fmt"

	"inventory-sync/core/snapshot"
	"inventory-sync/core/storage"

	"go.uber.org/zap"
)

// SnapshotReport lists the newest snapshot of each table.
type SnapshotReport struct {
	Bucket  string            `json:"bucket"`
	Latest  map[string]string `json:"latest"`
	Missing []string          `json:"missing"`
}

// CheckSnapshots verifies the bucket exists and finds the newest snapshot of
// every table. Tables without a snapshot are reported in Missing.
func CheckSnapshots(ctx context.Context, client storage.Client, bucket string, store *snapshot.Store, tables []string) (*SnapshotReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &SnapshotReport{
		Bucket:  bucket,
		Latest:  make(map[string]string, len(tables)),
		Missing: []string{},
	}
	for _, table := range tables {
		key, err := store.Latest(ctx, table)
		if errors.Is(err, snapshot.ErrNotFound) {
			report.Missing = append(report.Missing, table)
			continue
		}
		if err != nil {
			return nil, err
		}
		report.Latest[table] = key
	}
	return report, nil
}

// FixBucket creates the snapshot bucket.
func FixBucket(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		logger.Error("Failed to create snapshot bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Snapshot bucket ready", zap.String("bucket", bucket))
	return nil
}
