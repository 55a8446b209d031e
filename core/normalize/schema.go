package normalize

import (
	"fmt"
	"strings"
)

// FieldType is the canonical scalar type of a field.
type FieldType string

const (
	// TypeString holds Go string values.
	TypeString FieldType = "string"
	// TypeInt holds Go int64 values.
	TypeInt FieldType = "int"
	// TypeTime holds UTC time.Time values.
	TypeTime FieldType = "timestamp"
	// TypeBool holds Go bool values.
	TypeBool FieldType = "bool"
)

// Field describes one field of a record.
type Field struct {
	// Name is the canonical field name (and the column name in SQL stores).
	Name string

	// Source is the dot path into the raw record. Defaults to Name.
	Source string

	// Type is the canonical scalar type.
	Type FieldType

	// Required fails normalization with SchemaMismatch when the field is absent.
	Required bool

	// KeepSentinels disables null-sentinel replacement for this field, for fields
	// where a marker such as "" is a meaningful value.
	KeepSentinels bool

	// Derive computes the field from the already normalized record instead of
	// reading Source. Derived fields are evaluated after all sourced fields.
	Derive func(rec map[string]any) (any, error)
}

func (f Field) path() []string {
	if f.Source == "" {
		return []string{f.Name}
	}
	return strings.Split(f.Source, ".")
}

// Schema is the ordered set of fields shared by every record of a record set.
type Schema struct {
	identity  string
	fields    []Field
	byName    map[string]int
	sentinels map[string]struct{}
	// stringSentinels extends sentinel replacement to string fields.
	stringSentinels bool
}

// DefaultNullSentinels are textual markers treated as "missing" by default. They
// apply to non-string fields; see SetStringSentinels.
var DefaultNullSentinels = []string{"NaN", "NaT", "nan", "None"}

// NewSchema builds a schema. The identity field must be one of the fields; it is
// always treated as required.
func NewSchema(identity string, fields ...Field) (*Schema, error) {
	s := &Schema{
		identity: identity,
		byName:   make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, &SchemaMismatchError{Field: fmt.Sprintf("#%d", i), Reason: "field has no name"}
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, &SchemaMismatchError{Field: f.Name, Reason: "declared twice"}
		}
		switch f.Type {
		case TypeString, TypeInt, TypeTime, TypeBool:
		default:
			return nil, &SchemaMismatchError{Field: f.Name, Reason: fmt.Sprintf("unknown type %q", f.Type)}
		}
		if f.Name == identity {
			f.Required = true
			if f.Derive != nil {
				return nil, &SchemaMismatchError{Field: f.Name, Reason: "identity field cannot be derived"}
			}
		}
		s.byName[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	if _, ok := s.byName[identity]; !ok {
		return nil, &SchemaMismatchError{Field: identity, Reason: "identity field is not declared in schema"}
	}
	s.SetNullSentinels(DefaultNullSentinels...)
	return s, nil
}

// SetNullSentinels replaces the textual markers normalized to nil.
func (s *Schema) SetNullSentinels(values ...string) {
	s.sentinels = make(map[string]struct{}, len(values))
	for _, v := range values {
		s.sentinels[v] = struct{}{}
	}
}

// SetStringSentinels makes string fields honour the null sentinels too. Sources
// that serialize missing values as text (CSV, dataframes) want this; JSON sources
// send real nulls, and there a course named "None" is data.
func (s *Schema) SetStringSentinels(on bool) {
	s.stringSentinels = on
}

// Identity returns the identity field name.
func (s *Schema) Identity() string { return s.identity }

// IdentityField returns the identity field definition.
func (s *Schema) IdentityField() Field { return s.fields[s.byName[s.identity]] }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldNames returns the field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the schema declares the named field.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Canonical returns a schema that reads every field from its canonical name and
// derives nothing. It normalizes records that were already normalized once, such
// as rows read back from a snapshot.
func (s *Schema) Canonical() *Schema {
	c := &Schema{
		identity:  s.identity,
		fields:    make([]Field, len(s.fields)),
		byName:    make(map[string]int, len(s.fields)),
		sentinels: make(map[string]struct{}, len(s.sentinels)),

		stringSentinels: s.stringSentinels,
	}
	for i, f := range s.fields {
		f.Source = ""
		f.Derive = nil
		c.fields[i] = f
		c.byName[f.Name] = i
	}
	for k := range s.sentinels {
		c.sentinels[k] = struct{}{}
	}
	return c
}
