package sysutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClearTerminalWritesEscape(t *testing.T) {
	var buf bytes.Buffer
	ClearTerminal(&buf)
	assert.Equal(t, ansiClear, buf.String())
}
