package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// memStore is an in-memory Store keyed by int64 identity that records every call.
type memStore struct {
	rows  map[Identity]Record
	calls []string

	loadErr   error
	updateErr error
	insertErr error
	deleteErr error

	// onUpdate runs inside BulkUpdate, before the write.
	onUpdate func(ctx context.Context)
	// ctxErrs records ctx.Err() observed by each write call.
	ctxErrs []error
}

func newMemStore(ids ...int64) *memStore {
	s := &memStore{rows: make(map[Identity]Record)}
	for _, id := range ids {
		s.rows[id] = Record{"id": id, "name": fmt.Sprintf("persisted-%d", id)}
	}
	return s
}

func (s *memStore) LoadAllIdentities(ctx context.Context) (IdentitySet, error) {
	s.calls = append(s.calls, "load")
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	ids := make(IdentitySet, len(s.rows))
	for id := range s.rows {
		ids.Add(id)
	}
	return ids, nil
}

func (s *memStore) BulkUpdate(ctx context.Context, records []Record) (int, error) {
	s.calls = append(s.calls, "update")
	if s.onUpdate != nil {
		s.onUpdate(ctx)
	}
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if s.updateErr != nil {
		return len(records) / 2, s.updateErr
	}
	for _, r := range records {
		if _, ok := s.rows[r["id"]]; !ok {
			return 0, errors.New("update of missing row")
		}
		s.rows[r["id"]] = r
	}
	return len(records), nil
}

func (s *memStore) BulkInsert(ctx context.Context, records []Record) (int, error) {
	s.calls = append(s.calls, "insert")
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	for _, r := range records {
		if _, ok := s.rows[r["id"]]; ok {
			return 0, errors.New("duplicate key")
		}
		s.rows[r["id"]] = r
	}
	return len(records), nil
}

func (s *memStore) BulkDelete(ctx context.Context, ids IdentitySet) (int, error) {
	s.calls = append(s.calls, "delete")
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	n := 0
	for id := range ids {
		if _, ok := s.rows[id]; ok {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

func (s *memStore) identities() IdentitySet {
	ids := make(IdentitySet, len(s.rows))
	for id := range s.rows {
		ids.Add(id)
	}
	return ids
}
