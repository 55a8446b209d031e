package course

import (
	"strings"
	"testing"
	"time"

	"inventory-sync/core/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_NormalizesNode(t *testing.T) {
	schema, err := Schema(125, 17700000000000000)
	require.NoError(t, err)

	rec, err := normalize.New(schema).Normalize(map[string]any{
		"_id":       "4321",
		"name":      "SI 664",
		"sisId":     nil,
		"state":     "available",
		"createdAt": "2026-01-03T10:00:00-05:00",
		"account":   map[string]any{"_id": "88"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4321), rec["canvas_id"])
	assert.Equal(t, int64(88), rec["account_id"])
	assert.Equal(t, int64(125), rec["term_id"])
	assert.Nil(t, rec["sis_id"])
	assert.NotContains(t, rec, "published_at")
	assert.Equal(t, "available", rec["workflow_state"])
	assert.Equal(t, time.Date(2026, 1, 3, 15, 0, 0, 0, time.UTC), rec["created_at"])
	assert.Equal(t, int64(17700000000004321), rec["warehouse_id"])
}

func TestSchema_MissingAccount(t *testing.T) {
	schema, err := Schema(125, 0)
	require.NoError(t, err)

	_, err = normalize.New(schema).Normalize(map[string]any{"_id": "1", "name": "x"})
	assert.ErrorIs(t, err, normalize.ErrSchemaMismatch)
}

func TestSchema_CanonicalRoundTrip(t *testing.T) {
	schema, err := Schema(125, 1000)
	require.NoError(t, err)

	// A row read back from a snapshot is already canonical; derived values are kept.
	rec, err := normalize.New(schema.Canonical()).Normalize(map[string]any{
		"canvas_id": float64(5), "name": "x", "account_id": float64(1), "term_id": float64(99),
		"sis_id": nil, "created_at": nil, "workflow_state": "deleted",
		"warehouse_id": float64(7),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), rec["term_id"])
	assert.Equal(t, int64(7), rec["warehouse_id"])
}

func TestSchema_SourcedFieldsAreQueried(t *testing.T) {
	schema, err := Schema(125, 0)
	require.NoError(t, err)

	for _, f := range schema.Fields() {
		if f.Derive != nil {
			continue
		}
		src := f.Source
		if src == "" {
			src = f.Name
		}
		for _, segment := range strings.Split(src, ".") {
			assert.Contains(t, Query, segment, "field %s reads %s", f.Name, src)
		}
	}
	assert.NotContains(t, schema.FieldNames(), "published_at")
}

func TestSchema_TextSentinelsAreData(t *testing.T) {
	schema, err := Schema(125, 0)
	require.NoError(t, err)

	rec, err := normalize.New(schema).Normalize(map[string]any{
		"_id": "1", "name": "None", "state": "NaN", "account": map[string]any{"_id": "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "None", rec["name"])
	assert.Equal(t, "NaN", rec["workflow_state"])
}
