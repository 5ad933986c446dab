// Package pooler provides a small generic resource pool. The gateway uses it
// to hand out database handles one caller at a time.
package pooler

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Get once the pool has been closed.
var ErrPoolClosed = errors.New("pool is closed")

type Config[T any] struct {
	// MaxItems is the maximum number of items checked out at the same time.
	// Must be greater than zero.
	MaxItems int
	// MaxIdle is the maximum number of items kept around after Put.
	// Must be greater than or equal to zero and not exceed MaxItems.
	// Zero means every item is closed as soon as it is returned.
	MaxIdle int
	// NewFunc is the function to create a new item.
	NewFunc func(ctx context.Context) (T, error)
	// CloseFunc is the function to close an item.
	CloseFunc func(T) error
}

// Pool is a generic, thread-safe pool for any resource type T.
//
// A slot is taken for every checked out item, so at most MaxItems callers
// hold an item at once and the rest wait in Get until a slot is released
// or their context is done.
type Pool[T any] struct {
	Config[T]

	mu        sync.Mutex
	closed    bool
	slots     chan struct{}
	idleItems []T
}

// NewPool creates a Pool with the specified limits and functions.
func NewPool[T any](config Config[T]) (*Pool[T], error) {
	if config.MaxItems <= 0 {
		return nil, errors.New("maxItems must be greater than zero")
	}
	if config.MaxIdle < 0 {
		return nil, errors.New("maxIdle cannot be negative")
	}
	if config.MaxIdle > config.MaxItems {
		return nil, errors.New("maxIdle cannot exceed maxItems")
	}
	if config.NewFunc == nil {
		return nil, errors.New("newFunc must not be nil")
	}
	if config.CloseFunc == nil {
		return nil, errors.New("closeFunc must not be nil")
	}

	return &Pool[T]{
		Config:    config,
		slots:     make(chan struct{}, config.MaxItems),
		idleItems: make([]T, 0, config.MaxIdle),
	}, nil
}

// Get retrieves an item from the pool, reusing an idle one when possible.
// If all slots are taken it blocks until an item is returned or ctx is done.
func (p *Pool[T]) Get(ctx context.Context) (T, error) {
	var zero T

	if p.isClosed() {
		return zero, ErrPoolClosed
	}

	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.slots
		return zero, ErrPoolClosed
	}
	if len(p.idleItems) > 0 {
		idx := len(p.idleItems) - 1
		res := p.idleItems[idx]
		p.idleItems = p.idleItems[:idx]
		p.mu.Unlock()
		return res, nil
	}
	p.mu.Unlock()

	res, err := p.NewFunc(ctx)
	if err != nil {
		<-p.slots
		return zero, err
	}
	return res, nil
}

// Put returns an item to the pool and releases its slot. The item is
// closed if the pool is closed or MaxIdle is already reached.
func (p *Pool[T]) Put(res T) error {
	p.mu.Lock()
	defer func() {
		p.mu.Unlock()
		<-p.slots
	}()

	if p.closed || len(p.idleItems) >= p.MaxIdle {
		return p.CloseFunc(res)
	}

	p.idleItems = append(p.idleItems, res)
	return nil
}

// Discard closes an item that must not be reused and releases its slot.
func (p *Pool[T]) Discard(res T) error {
	defer func() { <-p.slots }()
	return p.CloseFunc(res)
}

// Idle returns the number of idle items.
func (p *Pool[T]) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idleItems)
}

func (p *Pool[T]) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Close closes the pool and all idle items. Any subsequent call to Get()
// will fail. Items checked out at this point are closed when Put back.
func (p *Pool[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var err error
	for _, res := range p.idleItems {
		if e := p.CloseFunc(res); e != nil && err == nil {
			err = e
		}
	}
	p.idleItems = nil
	return err
}
