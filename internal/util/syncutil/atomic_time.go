package syncutil

import "time"

// AtomicTime is an Atomic holding a time.Time.
type AtomicTime = Atomic[time.Time]

// NewAtomicTime creates an AtomicTime holding initial.
func NewAtomicTime(initial time.Time) *AtomicTime {
	return NewAtomic(initial)
}
