// Package integrity checks the infrastructure the sync jobs depend on.
//
// # Checks Provided
//
//   - Schema: the warehouse tables match the GORM models (columns, types).
//   - Snapshots: the snapshot bucket exists and every synced table has a snapshot.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/snapshots : Runs the snapshot check (supports ?fix=true).
package integrity
