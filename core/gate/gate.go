package gate

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultCapacity is the number of concurrent requests allowed when no
// explicit capacity is configured.
const DefaultCapacity = 5

// Gate is a bounded semaphore shared by all outbound calls.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int
}

// New creates a gate admitting at most capacity concurrent holders.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Gate {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of concurrent holders.
func (g *Gate) Capacity() int {
	return g.capacity
}

// Acquire blocks until a slot is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release frees a slot taken by Acquire.
func (g *Gate) Release() {
	g.sem.Release(1)
}

// Do runs fn while holding a slot.
func (g *Gate) Do(ctx context.Context, fn func() error) error {
	if err := g.Acquire(ctx); err != nil {
		return err
	}
	defer g.Release()
	return fn()
}
