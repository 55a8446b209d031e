package reconcile

import (
	"fmt"
	"sort"

	"inventory-sync/core/normalize"
	"inventory-sync/core/utils"
)

// Identity is a canonical identity value: int64 or string.
type Identity = any

// IdentitySet is a set of canonical identity values.
type IdentitySet map[Identity]struct{}

// NewIdentitySet builds a set from canonical values.
func NewIdentitySet(ids ...Identity) IdentitySet {
	s := make(IdentitySet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s IdentitySet) Add(id Identity) {
	s[id] = struct{}{}
}

// Has reports membership.
func (s IdentitySet) Has(id Identity) bool {
	_, ok := s[id]
	return ok
}

// Len returns the set size.
func (s IdentitySet) Len() int {
	return len(s)
}

// Intersect returns s ∩ o.
func (s IdentitySet) Intersect(o IdentitySet) IdentitySet {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(IdentitySet)
	for id := range small {
		if large.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Difference returns s − o.
func (s IdentitySet) Difference(o IdentitySet) IdentitySet {
	out := make(IdentitySet)
	for id := range s {
		if !o.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Union returns s ∪ o.
func (s IdentitySet) Union(o IdentitySet) IdentitySet {
	out := make(IdentitySet, len(s)+len(o))
	for id := range s {
		out.Add(id)
	}
	for id := range o {
		out.Add(id)
	}
	return out
}

// Sorted returns the members in a deterministic order: integers ascending, then
// strings ascending.
func (s IdentitySet) Sorted() []Identity {
	out := make([]Identity, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return identityLess(out[i], out[j])
	})
	return out
}

func identityLess(a, b Identity) bool {
	ai, aInt := a.(int64)
	bi, bInt := b.(int64)
	switch {
	case aInt && bInt:
		return ai < bi
	case aInt != bInt:
		return aInt
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

// CanonicalIdentity converts a raw identity value into its canonical form for the
// given field type. Nil and unconvertible values fail with SchemaMismatch.
func CanonicalIdentity(field normalize.Field, v any) (Identity, error) {
	if v == nil {
		return nil, &normalize.SchemaMismatchError{Field: field.Name, Reason: "identity value is null"}
	}
	switch field.Type {
	case normalize.TypeInt:
		i, err := utils.ToInt64(v)
		if err != nil {
			return nil, &normalize.SchemaMismatchError{Field: field.Name, Reason: "invalid identity", Err: err}
		}
		return i, nil
	case normalize.TypeString:
		return utils.ToString(v), nil
	default:
		return nil, &normalize.SchemaMismatchError{
			Field:  field.Name,
			Reason: fmt.Sprintf("identity type %s is not supported", field.Type),
		}
	}
}
