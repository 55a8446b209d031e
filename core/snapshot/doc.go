// Package snapshot keeps point-in-time copies of a persisted record set in
// object storage.
//
// A reconciliation run commits each phase independently, so a failed run can
// leave the table half updated. Taking a snapshot before the run gives callers
// a way back: Latest finds the newest snapshot of a table and Load returns it
// for re-reconciliation.
//
// Keys have the form <prefix>/<table>/<timestamp>.json with a fixed-width UTC
// timestamp, so lexical order is chronological order.
package snapshot
