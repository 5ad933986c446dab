package syncutil

import "sync/atomic"

// Atomic holds a value of type T that can be loaded and stored by
// multiple goroutines. The zero Atomic loads the zero value of T.
type Atomic[T any] struct {
	ptr atomic.Pointer[T]
}

// NewAtomic creates a new Atomic holding initial.
func NewAtomic[T any](initial T) *Atomic[T] {
	a := &Atomic[T]{}
	a.Store(initial)
	return a
}

// Load returns the current value.
func (a *Atomic[T]) Load() T {
	if v := a.ptr.Load(); v != nil {
		return *v
	}
	var zero T
	return zero
}

// Store replaces the current value.
func (a *Atomic[T]) Store(value T) {
	a.ptr.Store(&value)
}
