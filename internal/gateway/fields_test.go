package gateway

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromMap(t *testing.T) {
	fields := FieldsFromMap(map[string]any{"b": 2.0, "a": 1.0, "c": "x"})
	assert.Equal(t, []string{"a", "b", "c"}, fields.Columns())
	assert.Equal(t, []any{1.0, 2.0, "x"}, fields.Values())

	assert.Empty(t, FieldsFromMap(nil))
}

func TestFieldsUnmarshalJSON(t *testing.T) {
	t.Run("KeepsKeyOrder", func(t *testing.T) {
		var fields Fields
		require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": "two", "m": null}`), &fields))
		assert.Equal(t, []string{"z", "a", "m"}, fields.Columns())
		assert.Equal(t, []any{json.Number("1"), "two", nil}, fields.Values())
	})

	t.Run("Null", func(t *testing.T) {
		fields := Fields{{"a", 1}}
		require.NoError(t, json.Unmarshal([]byte(`null`), &fields))
		assert.Nil(t, fields)
	})

	t.Run("NotAnObject", func(t *testing.T) {
		var fields Fields
		assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &fields))
	})

	t.Run("RoundTripKeepsOrder", func(t *testing.T) {
		fields := Fields{{"z", "last"}, {"a", int64(1)}}
		b, err := json.Marshal(fields)
		require.NoError(t, err)
		assert.Equal(t, `{"z":"last","a":1}`, string(b))
	})
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    any
		wantErr bool
	}{
		{"nil", nil, nil, false},
		{"string", "x", "x", false},
		{"bool", true, true, false},
		{"int", 3, int64(3), false},
		{"integral float", 36.0, int64(36), false},
		{"fractional float", 1.5, 1.5, false},
		{"huge float", math.MaxFloat64, math.MaxFloat64, false},
		{"largest exact integer", float64(1 << 53), int64(1 << 53), false},
		{"smallest exact integer", -float64(1 << 53), int64(-(1 << 53)), false},
		{"integral float past exact range", float64(1<<53) * 2, float64(1<<53) * 2, false},
		{"json integer past exact range", json.Number("9007199254740993"), int64(9007199254740993), false},
		{"json integer", json.Number("42"), int64(42), false},
		{"json float", json.Number("4.2"), 4.2, false},
		{"bytes", []byte("raw"), []byte("raw"), false},
		{"object", map[string]any{"a": 1}, nil, true},
		{"array", []any{1}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeValue(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeValues(t *testing.T) {
	got, err := normalizeValues([]any{1.0, "a"})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "a"}, got)

	_, err = normalizeValues([]any{"a", map[string]any{}})
	assert.Equal(t, KindInvalidArgument, classify(err))
	assert.Contains(t, err.Error(), "parameter 2")
}
