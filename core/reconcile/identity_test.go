package reconcile

import (
	"testing"

	"inventory-sync/core/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentitySet_Operations(t *testing.T) {
	a := NewIdentitySet(int64(1), int64(2), int64(3))
	b := NewIdentitySet(int64(2), int64(3), int64(4))

	assert.Equal(t, NewIdentitySet(int64(2), int64(3)), a.Intersect(b))
	assert.Equal(t, NewIdentitySet(int64(1)), a.Difference(b))
	assert.Equal(t, NewIdentitySet(int64(4)), b.Difference(a))
	assert.Equal(t, 4, a.Union(b).Len())
}

func TestIdentitySet_Sorted(t *testing.T) {
	s := NewIdentitySet("b", int64(10), "a", int64(-2), int64(3))
	assert.Equal(t, []Identity{int64(-2), int64(3), int64(10), "a", "b"}, s.Sorted())
}

func TestCanonicalIdentity(t *testing.T) {
	intField := normalize.Field{Name: "id", Type: normalize.TypeInt}
	strField := normalize.Field{Name: "code", Type: normalize.TypeString}

	id, err := CanonicalIdentity(intField, int32(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	id, err = CanonicalIdentity(intField, []byte("17"))
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	id, err = CanonicalIdentity(strField, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = CanonicalIdentity(intField, nil)
	assert.ErrorIs(t, err, normalize.ErrSchemaMismatch)

	_, err = CanonicalIdentity(intField, 1.5)
	assert.ErrorIs(t, err, normalize.ErrSchemaMismatch)
}
