package normalize

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema("canvas_id",
		Field{Name: "canvas_id", Source: "_id", Type: TypeInt},
		Field{Name: "name", Type: TypeString, Required: true},
		Field{Name: "account_id", Source: "account._id", Type: TypeInt},
		Field{Name: "created_at", Source: "createdAt", Type: TypeTime},
		Field{Name: "sis_id", Source: "sisId", Type: TypeInt},
		Field{Name: "code", Type: TypeString, KeepSentinels: true},
		Field{Name: "warehouse_id", Type: TypeInt, Derive: func(rec map[string]any) (any, error) {
			return rec["canvas_id"].(int64) + 1000, nil
		}},
	)
	require.NoError(t, err)
	return s
}

func TestNewSchema_Validation(t *testing.T) {
	t.Run("MissingIdentity", func(t *testing.T) {
		_, err := NewSchema("id", Field{Name: "name", Type: TypeString})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("DuplicateField", func(t *testing.T) {
		_, err := NewSchema("id", Field{Name: "id", Type: TypeInt}, Field{Name: "id", Type: TypeInt})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := NewSchema("id", Field{Name: "id", Type: "decimal"})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("IdentityForcedRequired", func(t *testing.T) {
		s, err := NewSchema("id", Field{Name: "id", Type: TypeInt})
		require.NoError(t, err)
		assert.True(t, s.IdentityField().Required)
		assert.Equal(t, []string{"id"}, s.FieldNames())
	})
}

func TestNormalize(t *testing.T) {
	n := New(courseSchema(t))

	raw := map[string]any{
		"_id":       "42",
		"name":      "Intro to Go",
		"account":   map[string]any{"_id": float64(7)},
		"createdAt": "2021-03-01T12:00:00Z",
		"sisId":     math.NaN(),
		"code":      "NaN",
	}

	rec, err := n.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(42), rec["canvas_id"])
	assert.Equal(t, "Intro to Go", rec["name"])
	assert.Equal(t, int64(7), rec["account_id"])
	assert.Equal(t, time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC), rec["created_at"])
	assert.Nil(t, rec["sis_id"], "NaN should normalize to nil")
	assert.Equal(t, "NaN", rec["code"], "KeepSentinels preserves markers")
	assert.Equal(t, int64(1042), rec["warehouse_id"])
	assert.Len(t, rec, 7)
}

func TestNormalize_NullHandling(t *testing.T) {
	n := New(courseSchema(t))

	rec, err := n.Normalize(map[string]any{
		"_id":       1,
		"name":      "x",
		"account":   nil,
		"createdAt": "NaT",
	})
	require.NoError(t, err)

	assert.Contains(t, rec, "account_id")
	assert.Nil(t, rec["account_id"], "null parent object yields nil")
	assert.Nil(t, rec["created_at"], "sentinel yields nil")
	assert.Nil(t, rec["sis_id"], "absent optional field yields nil")
}

func TestNormalize_StringSentinels(t *testing.T) {
	raw := map[string]any{"_id": 1, "name": "None", "code": "NaN", "createdAt": "NaT"}

	t.Run("TextIsDataByDefault", func(t *testing.T) {
		rec, err := New(courseSchema(t)).Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "None", rec["name"])
		assert.Nil(t, rec["created_at"], "non-string fields still honour sentinels")
	})

	t.Run("Enabled", func(t *testing.T) {
		s := courseSchema(t)
		s.SetStringSentinels(true)
		rec, err := New(s).Normalize(raw)
		require.NoError(t, err)
		assert.Nil(t, rec["name"])
		assert.Equal(t, "NaN", rec["code"], "KeepSentinels still wins")
	})

	t.Run("CanonicalKeepsSetting", func(t *testing.T) {
		s := courseSchema(t)
		s.SetStringSentinels(true)
		rec, err := New(s.Canonical()).Normalize(map[string]any{"canvas_id": 1, "name": "None"})
		require.NoError(t, err)
		assert.Nil(t, rec["name"])
	})
}

func TestNormalize_SchemaMismatch(t *testing.T) {
	n := New(courseSchema(t))

	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{"MissingRequired", map[string]any{"_id": 1}, "name"},
		{"MissingIdentity", map[string]any{"name": "x"}, "canvas_id"},
		{"NullIdentity", map[string]any{"_id": nil, "name": "x"}, "canvas_id"},
		{"BadInteger", map[string]any{"_id": "abc", "name": "x"}, "canvas_id"},
		{"BadTimestamp", map[string]any{"_id": 1, "name": "x", "createdAt": true}, "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaMismatch)

			var sm *SchemaMismatchError
			require.True(t, errors.As(err, &sm))
			assert.Equal(t, tt.field, sm.Field)
		})
	}
}

func TestNormalizeAll_StopsAtFirstMismatch(t *testing.T) {
	n := New(courseSchema(t))

	_, err := n.NormalizeAll([]map[string]any{
		{"_id": 1, "name": "a"},
		{"_id": 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
