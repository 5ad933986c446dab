package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildInsert(t *testing.T) {
	t.Run("OnePlaceholderPerColumn", func(t *testing.T) {
		values := Fields{{"name", "Ada"}, {"email", "ada@example.com"}, {"age", int64(36)}}
		query, args, err := buildInsert("users", values)
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO users (name,email,age) VALUES (?,?,?)", query)
		assert.Equal(t, 3, strings.Count(query, "?"))
		assert.Equal(t, []any{"Ada", "ada@example.com", int64(36)}, args)
	})

	t.Run("QuotesOddNames", func(t *testing.T) {
		query, args, err := buildInsert("my table", Fields{{"order", nil}})
		require.NoError(t, err)
		assert.Equal(t, `INSERT INTO "my table" ("order") VALUES (?)`, query)
		assert.Equal(t, []any{nil}, args)
	})

	t.Run("NoValues", func(t *testing.T) {
		_, _, err := buildInsert("users", nil)
		assert.Error(t, err)
		assert.Equal(t, KindInvalidArgument, classify(err))
	})
}

func TestBuildSelect(t *testing.T) {
	conditions := Fields{{"a", int64(1)}, {"b", int64(2)}}

	tests := []struct {
		name     string
		opts     ReadOptions
		expected string
		args     []any
	}{
		{
			name:     "no conditions",
			opts:     ReadOptions{},
			expected: "SELECT * FROM users",
		},
		{
			name:     "conditions in order",
			opts:     ReadOptions{Conditions: conditions},
			expected: "SELECT * FROM users WHERE a=? AND b=?",
			args:     []any{int64(1), int64(2)},
		},
		{
			name:     "limit only",
			opts:     ReadOptions{Limit: int64Ptr(5)},
			expected: "SELECT * FROM users LIMIT 5",
		},
		{
			name:     "limit and offset",
			opts:     ReadOptions{Limit: int64Ptr(5), Offset: int64Ptr(10)},
			expected: "SELECT * FROM users LIMIT 5 OFFSET 10",
		},
		{
			name:     "offset without limit is dropped",
			opts:     ReadOptions{Offset: int64Ptr(10)},
			expected: "SELECT * FROM users",
		},
		{
			name:     "conditions limit and offset",
			opts:     ReadOptions{Conditions: conditions, Limit: int64Ptr(1), Offset: int64Ptr(2)},
			expected: "SELECT * FROM users WHERE a=? AND b=? LIMIT 1 OFFSET 2",
			args:     []any{int64(1), int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelect("users", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
			if tt.args == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.args, args)
			}
		})
	}

	t.Run("NegativeLimit", func(t *testing.T) {
		_, _, err := buildSelect("users", ReadOptions{Limit: int64Ptr(-1)})
		assert.Equal(t, KindInvalidArgument, classify(err))
	})

	t.Run("NegativeOffset", func(t *testing.T) {
		_, _, err := buildSelect("users", ReadOptions{Limit: int64Ptr(1), Offset: int64Ptr(-1)})
		assert.Equal(t, KindInvalidArgument, classify(err))
	})
}

func TestBuildUpdate(t *testing.T) {
	t.Run("ValuesBeforeConditions", func(t *testing.T) {
		query, args, err := buildUpdate(
			"users",
			Fields{{"name", "Bob"}, {"age", int64(40)}},
			Fields{{"id", int64(1)}, {"email", "bob@example.com"}},
		)
		require.NoError(t, err)
		assert.Equal(t, "UPDATE users SET name = ?, age = ? WHERE id=? AND email=?", query)
		assert.Equal(t, []any{"Bob", int64(40), int64(1), "bob@example.com"}, args)
	})

	t.Run("MissingConditions", func(t *testing.T) {
		_, _, err := buildUpdate("users", Fields{{"name", "Bob"}}, nil)
		assert.Equal(t, KindInvalidArgument, classify(err))
	})

	t.Run("MissingValues", func(t *testing.T) {
		_, _, err := buildUpdate("users", nil, Fields{{"id", int64(1)}})
		assert.Equal(t, KindInvalidArgument, classify(err))
	})
}

func TestBuildDelete(t *testing.T) {
	query, args, err := buildDelete("users", Fields{{"id", int64(1)}, {"name", "Ada"}})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE id=? AND name=?", query)
	assert.Equal(t, []any{int64(1), "Ada"}, args)

	_, _, err = buildDelete("users", Fields{})
	assert.Equal(t, KindInvalidArgument, classify(err))
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users", "users"},
		{"_private2", "_private2"},
		{"order", `"order"`},
		{"Select", `"Select"`},
		{"my table", `"my table"`},
		{`we"ird`, `"we""ird"`},
		{"1st", `"1st"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteIdent(tt.in))
		})
	}
}
