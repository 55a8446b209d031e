package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"inventory-sync/core/normalize"
	"inventory-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// StoreOptions tunes the bulk operations of a TableStore.
type StoreOptions struct {
	// BatchSize caps the records per statement. Defaults to 500.
	BatchSize int
	// UpdateWorkers caps concurrent update chunks. Defaults to 4.
	UpdateWorkers int
	// Timeout bounds each store call. Zero means no timeout.
	Timeout time.Duration
}

// TableStore persists normalized records in one SQL table whose columns are
// named after the schema fields.
type TableStore struct {
	db     *gorm.DB
	table  string
	schema *normalize.Schema
	opts   StoreOptions
	logger *zap.Logger
}

var (
	_ reconcile.Store    = (*TableStore)(nil)
	_ reconcile.Exporter = (*TableStore)(nil)
)

// NewTableStore binds a table to a schema. The table must exist and carry the
// identity column.
func NewTableStore(db *gorm.DB, table string, schema *normalize.Schema, opts StoreOptions, logger *zap.Logger) (*TableStore, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.UpdateWorkers <= 0 {
		opts.UpdateWorkers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	missing, err := CheckColumns(db, table, []string{schema.Identity()})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrStoreUnavailable, err)
	}
	if len(missing) > 0 {
		return nil, &normalize.SchemaMismatchError{
			Field:  schema.Identity(),
			Reason: fmt.Sprintf("identity column not found in table %s", table),
		}
	}

	return &TableStore{
		db:     db,
		table:  table,
		schema: schema,
		opts:   opts,
		logger: logger.With(zap.String("table", table)),
	}, nil
}

// Table returns the table name.
func (s *TableStore) Table() string {
	return s.table
}

func (s *TableStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout > 0 {
		return context.WithTimeout(ctx, s.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// LoadAllIdentities plucks the identity column of every row.
func (s *TableStore) LoadAllIdentities(ctx context.Context) (reconcile.IdentitySet, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	identity := s.schema.Identity()
	tx := s.db.WithContext(ctx).Table(s.table)
	set := reconcile.NewIdentitySet()

	switch s.schema.IdentityField().Type {
	case normalize.TypeInt:
		var ids []int64
		if err := tx.Pluck(identity, &ids).Error; err != nil {
			return nil, fmt.Errorf("%w: failed to load identities from %s: %w", reconcile.ErrStoreUnavailable, s.table, err)
		}
		for _, id := range ids {
			set.Add(id)
		}
	default:
		var ids []string
		if err := tx.Pluck(identity, &ids).Error; err != nil {
			return nil, fmt.Errorf("%w: failed to load identities from %s: %w", reconcile.ErrStoreUnavailable, s.table, err)
		}
		for _, id := range ids {
			set.Add(id)
		}
	}

	s.logger.Debug("Loaded identities", zap.Int("count", set.Len()))
	return set, nil
}

// BulkInsert creates the records in batches inside one transaction.
func (s *TableStore) BulkInsert(ctx context.Context, records []reconcile.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows := s.rows(records)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(s.table).CreateInBatches(rows, s.opts.BatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert into %s: %w", reconcile.ErrStoreWriteFailed, s.table, err)
	}
	return len(records), nil
}

// BulkUpdate replaces every schema column of the matching rows. Chunks run
// concurrently, each in its own transaction; all chunks are awaited.
func (s *TableStore) BulkUpdate(ctx context.Context, records []reconcile.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	identity := s.schema.Identity()
	rows := s.rows(records)

	var updated atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.UpdateWorkers)

	for start := 0; start < len(rows); start += s.opts.BatchSize {
		chunk := rows[start:min(start+s.opts.BatchSize, len(rows))]
		g.Go(func() error {
			err := s.db.WithContext(gctx).Transaction(func(tx *gorm.DB) error {
				for _, row := range chunk {
					values := make(map[string]any, len(row)-1)
					for k, v := range row {
						if k != identity {
							values[k] = v
						}
					}
					if len(values) == 0 {
						continue
					}
					if err := tx.Table(s.table).Where(identity+" = ?", row[identity]).Updates(values).Error; err != nil {
						return fmt.Errorf("record %v: %w", row[identity], err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			updated.Add(int64(len(chunk)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(updated.Load()), fmt.Errorf("%w: failed to update %s: %w", reconcile.ErrStoreWriteFailed, s.table, err)
	}
	return int(updated.Load()), nil
}

// BulkDelete removes the rows with the given identities in batches inside one
// transaction.
func (s *TableStore) BulkDelete(ctx context.Context, ids reconcile.IdentitySet) (int, error) {
	if ids.Len() == 0 {
		return 0, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	identity := s.schema.Identity()
	sorted := ids.Sorted()

	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(sorted); start += s.opts.BatchSize {
			chunk := sorted[start:min(start+s.opts.BatchSize, len(sorted))]
			result := tx.Table(s.table).Where(identity+" IN ?", chunk).Delete(nil)
			if result.Error != nil {
				return result.Error
			}
			deleted += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to delete from %s: %w", reconcile.ErrStoreWriteFailed, s.table, err)
	}
	return int(deleted), nil
}

// LoadAll returns every row restricted to the schema columns, ordered by identity.
func (s *TableStore) LoadAll(ctx context.Context) ([]reconcile.Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []map[string]any
	err := s.db.WithContext(ctx).
		Table(s.table).
		Select(s.schema.FieldNames()).
		Order(s.schema.Identity()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to export %s: %w", reconcile.ErrStoreUnavailable, s.table, err)
	}

	out := make([]reconcile.Record, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out, nil
}

// rows projects records onto the schema columns so stray keys never reach SQL.
func (s *TableStore) rows(records []reconcile.Record) []map[string]any {
	names := s.schema.FieldNames()
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		row := make(map[string]any, len(names))
		for _, name := range names {
			row[name] = rec[name]
		}
		out[i] = row
	}
	return out
}
