// Package normalize converts raw source records into the canonical shape the
// reconcile engine expects.
//
// A Schema declares every field of a record set: its name, where it is found in the
// raw record (a dot path into nested JSON objects), its scalar type, and whether it
// is required. Exactly one field is the identity field.
//
// # Null handling
//
// Values that mean "missing" at the source (NaN, or one of the schema's null
// sentinels such as "NaT") become nil. Text sentinels only apply to string fields
// when the schema enables SetStringSentinels. A JSON null is also nil. A field that is absent
// from the raw record fails with SchemaMismatch when it is required; optional absent
// fields become nil. Because updates replace the full record, the distinction
// between "absent" and "explicitly null" is surfaced rather than guessed.
//
// # Usage
//
//	schema, err := normalize.NewSchema("canvas_id", fields...)
//	n := normalize.New(schema)
//	record, err := n.Normalize(raw)
package normalize
