// Package storage wraps the MinIO client used to keep snapshots of persisted
// record sets in S3 compatible object storage.
//
// Client is an interface so snapshot code can be tested against the testify
// mock in core/storage/mocks. EnsureBucket creates the target bucket on first
// use.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
