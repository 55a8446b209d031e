package utils

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{"int", 42, 42, false},
		{"int32", int32(-7), -7, false},
		{"uint8", uint8(255), 255, false},
		{"integral float", float64(1e6), 1000000, false},
		{"fractional float", 1.5, 0, true},
		{"NaN", math.NaN(), 0, true},
		{"string", " 123 ", 123, false},
		{"bytes", []byte("99"), 99, false},
		{"bad string", "abc", 0, true},
		{"json number", json.Number("9007199254740993"), 9007199254740993, false},
		{"unsupported", struct{}{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt64(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBool(t *testing.T) {
	b, err := ToBool("TRUE")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = ToBool(0)
	require.NoError(t, err)
	assert.False(t, b)

	_, err = ToBool("maybe")
	assert.Error(t, err)
}

func TestToTime(t *testing.T) {
	want := time.Date(2021, 3, 1, 12, 30, 0, 0, time.UTC)

	got, err := ToTime("2021-03-01T07:30:00-05:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	got, err = ToTime(want.Unix())
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = ToTime("2021-03-01 12:30:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = ToTime("yesterday")
	assert.Error(t, err)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "12", ToString(12))
	assert.Equal(t, "2021-03-01T00:00:00Z", ToString(time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)))
}
