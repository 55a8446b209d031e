// Package database opens the warehouse database and persists record sets in it.
//
// Connect configures GORM for MySQL (production) or SQLite (local runs and
// tests). GetTableColumns and CheckColumns inspect a live table, which lets
// callers fail fast when a schema field has no matching column.
//
// # TableStore
//
// TableStore is the SQL store used by the reconciler. It binds one table to one
// normalize.Schema and offers the bulk operations of reconcile.Store:
//
//   - LoadAllIdentities plucks the identity column.
//   - BulkInsert writes batches inside a single transaction.
//   - BulkUpdate replaces every schema column, running chunks concurrently.
//   - BulkDelete removes rows with IN batches inside a single transaction.
//
// Read failures wrap reconcile.ErrStoreUnavailable and write failures wrap
// reconcile.ErrStoreWriteFailed.
//
//	db, err := database.Connect(cfg.Database)
//	store, err := database.NewTableStore(db, "course", schema, database.StoreOptions{BatchSize: 500}, log)
package database
