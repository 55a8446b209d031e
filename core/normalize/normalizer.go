package normalize

import (
	"fmt"
	"math"

	"inventory-sync/core/utils"
)

// Record is a normalized record: field name to string, int64, bool, time.Time or nil.
type Record = map[string]any

// Normalizer converts raw records into Records using a Schema.
type Normalizer struct {
	schema *Schema
}

// New creates a normalizer for the given schema.
func New(schema *Schema) *Normalizer {
	return &Normalizer{schema: schema}
}

// Schema returns the normalizer's schema.
func (n *Normalizer) Schema() *Schema {
	return n.schema
}

// Normalize converts one raw record. It fails with a SchemaMismatchError if a
// required field is absent, the identity is null, or a value cannot be converted.
func (n *Normalizer) Normalize(raw map[string]any) (Record, error) {
	rec := make(Record, len(n.schema.fields))

	var derived []Field
	for _, f := range n.schema.fields {
		if f.Derive != nil {
			derived = append(derived, f)
			continue
		}

		val, present := lookup(raw, f.path())
		if !present {
			if f.Required {
				return nil, &SchemaMismatchError{Field: f.Name, Reason: "required field is absent"}
			}
			rec[f.Name] = nil
			continue
		}

		v, err := n.convert(f, val)
		if err != nil {
			return nil, err
		}
		if v == nil && f.Name == n.schema.identity {
			return nil, &SchemaMismatchError{Field: f.Name, Reason: "identity value is null"}
		}
		rec[f.Name] = v
	}

	for _, f := range derived {
		val, err := f.Derive(rec)
		if err != nil {
			return nil, &SchemaMismatchError{Field: f.Name, Reason: "derivation failed", Err: err}
		}
		v, err := n.convert(f, val)
		if err != nil {
			return nil, err
		}
		rec[f.Name] = v
	}

	return rec, nil
}

// NormalizeAll normalizes a batch, stopping at the first mismatch.
func (n *Normalizer) NormalizeAll(raws []map[string]any) ([]Record, error) {
	out := make([]Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := n.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (n *Normalizer) convert(f Field, val any) (any, error) {
	if n.isMissing(f, val) {
		return nil, nil
	}

	var (
		out any
		err error
	)
	switch f.Type {
	case TypeString:
		out = utils.ToString(val)
	case TypeInt:
		out, err = utils.ToInt64(val)
	case TypeBool:
		out, err = utils.ToBool(val)
	case TypeTime:
		out, err = utils.ToTime(val)
	}
	if err != nil {
		return nil, &SchemaMismatchError{Field: f.Name, Reason: fmt.Sprintf("cannot convert to %s", f.Type), Err: err}
	}
	return out, nil
}

// isMissing reports whether val is a "missing" marker that must become nil.
func (n *Normalizer) isMissing(f Field, val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case string:
		if f.KeepSentinels || (f.Type == TypeString && !n.schema.stringSentinels) {
			return false
		}
		_, ok := n.schema.sentinels[v]
		return ok
	}
	return false
}

// lookup walks a dot path through nested maps. present is false when any segment
// is absent; a present JSON null, including a null parent object, is reported as
// (nil, true).
func lookup(raw map[string]any, path []string) (any, bool) {
	var cur any = raw
	for _, seg := range path {
		if cur == nil {
			return nil, true
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
