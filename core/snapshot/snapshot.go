package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"inventory-sync/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Latest when a table has no snapshot.
var ErrNotFound = errors.New("snapshot not found")

// keyTimeFormat is fixed width so keys sort chronologically.
const keyTimeFormat = "20060102T150405.000000000Z"

// Document is the stored form of a snapshot.
type Document struct {
	Table         string           `json:"table"`
	IdentityField string           `json:"identity_field"`
	TakenAt       time.Time        `json:"taken_at"`
	Records       []map[string]any `json:"records"`
}

// Store saves and loads snapshots in one bucket.
type Store struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a snapshot store. An empty prefix defaults to "snapshots".
func New(client storage.Client, bucket, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = "snapshots"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
		now:    time.Now,
	}
}

func (s *Store) tablePrefix(table string) string {
	return path.Join(s.prefix, table) + "/"
}

// Save uploads the records of a table and returns the object key.
func (s *Store) Save(ctx context.Context, table, identityField string, records []map[string]any) (string, error) {
	doc := Document{
		Table:         table,
		IdentityField: identityField,
		TakenAt:       s.now().UTC(),
		Records:       records,
	}
	if doc.Records == nil {
		doc.Records = []map[string]any{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot of %s: %w", table, err)
	}

	key := s.tablePrefix(table) + doc.TakenAt.Format(keyTimeFormat) + ".json"
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}

	s.logger.Info("Snapshot saved", zap.String("table", table), zap.String("key", key), zap.Int("count", len(records)))
	return key, nil
}

// Load downloads and decodes a snapshot. Numbers are decoded as json.Number so
// large identities survive intact.
func (s *Store) Load(ctx context.Context, key string) (*Document, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", key, err)
	}
	return &doc, nil
}

// List returns the snapshot keys of a table, oldest first.
func (s *Store) List(ctx context.Context, table string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.tablePrefix(table),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots of %s: %w", table, obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Latest returns the key of the newest snapshot of a table.
func (s *Store) Latest(ctx context.Context, table string) (string, error) {
	keys, err := s.List(ctx, table)
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("%w for table %s", ErrNotFound, table)
	}
	return keys[len(keys)-1], nil
}

// Delete removes one snapshot.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}

// Prune keeps the newest keep snapshots of a table and removes the rest. It
// returns the number of removed snapshots.
func (s *Store) Prune(ctx context.Context, table string, keep int) (int, error) {
	if keep < 1 {
		return 0, nil
	}
	keys, err := s.List(ctx, table)
	if err != nil {
		return 0, err
	}
	if len(keys) <= keep {
		return 0, nil
	}
	stale := keys[:len(keys)-keep]

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, key := range stale {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var errs []string
	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", rerr.ObjectName, rerr.Err))
		}
	}
	if len(errs) > 0 {
		return len(stale) - len(errs), fmt.Errorf("prune had %d errors: %v", len(errs), errs)
	}

	s.logger.Info("Snapshots pruned", zap.String("table", table), zap.Int("count", len(stale)))
	return len(stale), nil
}
