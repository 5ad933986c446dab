package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKvToArgs(t *testing.T) {
	t.Run("NoArgs", func(t *testing.T) {
		result := kvToArgs()
		assert.Equal(t, []any{}, result)
	})

	t.Run("OneArg", func(t *testing.T) {
		kv := KV{"key": "value"}
		result := kvToArgs(kv)
		assert.Equal(t, []any{"key", "value"}, result)
	})

	t.Run("MultipleArgs", func(t *testing.T) {
		kv1 := KV{"key1": "value1", "key2": "value2"}
		kv2 := KV{"key3": "value3"}
		result := kvToArgs(kv1, kv2)
		assert.Equal(t, []any{"key1", "value1", "key2", "value2"}, result)
	})

	t.Run("PickOnlyFirst", func(t *testing.T) {
		kv1 := KV{"key1": "value1"}
		kv2 := KV{"key2": "value2"}
		result := kvToArgs(kv1, kv2)
		assert.Equal(t, []any{"key1", "value1"}, result)
	})

	t.Run("Order", func(t *testing.T) {
		kv := KV{"z": "value1", "a": "value2"}
		result := kvToArgs(kv)
		assert.Equal(t, []any{"a", "value2", "z", "value1"}, result)
	})
}

func TestKvToArgsNs(t *testing.T) {
	t.Run("NoArgs", func(t *testing.T) {
		result := kvToArgsNs("namespace")
		assert.Equal(t, []any{"ns", "namespace"}, result)
	})

	t.Run("OneArg", func(t *testing.T) {
		kv := KV{"key": "value"}
		result := kvToArgsNs("namespace", kv)
		assert.Equal(t, []any{"ns", "namespace", "key", "value"}, result)
	})

	t.Run("MultipleArgs", func(t *testing.T) {
		kv1 := KV{"key1": "value1", "key2": "value2"}
		kv2 := KV{"key3": "value3"}
		result := kvToArgsNs("namespace", kv1, kv2)
		assert.Equal(t, []any{"ns", "namespace", "key1", "value1", "key2", "value2"}, result)
	})

	t.Run("PickOnlyFirst", func(t *testing.T) {
		kv1 := KV{"key1": "value1"}
		kv2 := KV{"key2": "value2"}
		result := kvToArgsNs("namespace", kv1, kv2)
		assert.Equal(t, []any{"ns", "namespace", "key1", "value1"}, result)
	})

	t.Run("Order", func(t *testing.T) {
		kv := KV{"z": "value1", "a": "value2"}
		result := kvToArgsNs("namespace", kv)
		assert.Equal(t, []any{"ns", "namespace", "a", "value2", "z", "value1"}, result)
	})
}

func TestLoggerLevels(t *testing.T) {
	t.Run("DefaultInfo", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		assert.True(t, logger.IsInitialized())

		logger.DebugNs(NsGateway, "hidden")
		assert.Empty(t, buf.String())

		logger.InfoNs(NsGateway, "shown", KV{"table": "users"})
		assert.Contains(t, buf.String(), `"ns":"gateway"`)
		assert.Contains(t, buf.String(), `"table":"users"`)
	})

	t.Run("Debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf, "debug")
		logger.Debug("visible")
		assert.Contains(t, buf.String(), `"msg":"visible"`)
	})

	t.Run("ZeroValue", func(t *testing.T) {
		logger := Logger{}
		assert.False(t, logger.IsInitialized())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nope"))
}
