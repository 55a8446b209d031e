package reconcile

import "context"

// Store is the persistence collaborator. It exclusively owns the persisted set and
// is the only component that mutates it.
//
// Implementations apply their own timeout policy; the reconciler sets none.
type Store interface {
	// LoadAllIdentities returns the identity values of every persisted record.
	// Failures should wrap ErrStoreUnavailable.
	LoadAllIdentities(ctx context.Context) (IdentitySet, error)

	// BulkUpdate replaces the given records in full and returns the count.
	// Failures, partial or total, should wrap ErrStoreWriteFailed.
	BulkUpdate(ctx context.Context, records []Record) (int, error)

	// BulkInsert creates the given records and returns the count.
	BulkInsert(ctx context.Context, records []Record) (int, error)

	// BulkDelete removes the records with the given identities and returns the count.
	BulkDelete(ctx context.Context, ids IdentitySet) (int, error)
}

// Exporter is implemented by stores that can return their full persisted set.
// It is used to take snapshots before a run.
type Exporter interface {
	LoadAll(ctx context.Context) ([]Record, error)
}
