package syncutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAtomicTime(t *testing.T) {
	atom := NewAtomicTime(time.Time{})
	assert.True(t, atom.Load().IsZero())

	now := time.Now()
	atom.Store(now)
	assert.True(t, now.Equal(atom.Load()))
}
