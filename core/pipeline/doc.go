// Package pipeline runs one sync job end to end.
//
// A run fetches every page from the source, normalizes the raw records,
// optionally snapshots the persisted set, reconciles the store against the
// incoming set and records the outcome. Nothing is written to the store until
// the whole source has been fetched and normalized, so a source or schema
// failure never leaves a partial update behind.
//
// RunWithApproval hands the computed plan to an Approver before the snapshot and
// the writes; the CLI uses it to confirm runs that delete records.
//
// Runs of one Job are serialized; a second Run while one is in flight fails
// with ErrRunInProgress.
package pipeline
