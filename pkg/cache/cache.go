package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Box holds a single cached value that is valid for a fixed window after it
// was fetched. Outside the window the value is treated as absent and the
// next Get refetches it. Concurrent refetches are collapsed into one fetch.
type Box[T any] struct {
	mu        sync.RWMutex
	value     T
	fetchedAt time.Time
	ttl       time.Duration

	group singleflight.Group
	now   func() time.Time // injectable clock for testing
}

// New creates a Box whose values are valid for ttl after each fetch.
func New[T any](ttl time.Duration) *Box[T] {
	return &Box[T]{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached value when still valid, otherwise calls fetch,
// stores its result, and returns it. A fetch error leaves any previous
// (expired) value untouched and is returned to every collapsed caller.
func (b *Box[T]) Get(ctx context.Context, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := b.Peek(); ok {
		return v, nil
	}

	res, err, _ := b.group.Do("fetch", func() (any, error) {
		// A concurrent caller may have refreshed while we waited.
		if v, ok := b.Peek(); ok {
			return v, nil
		}

		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		b.mu.Lock()
		b.value = v
		b.fetchedAt = b.now()
		b.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Peek returns the cached value and whether it is still within its window.
func (b *Box[T]) Peek() (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.fetchedAt.IsZero() || b.now().Sub(b.fetchedAt) >= b.ttl {
		var zero T
		return zero, false
	}
	return b.value, true
}

// Invalidate discards the cached value so the next Get refetches.
func (b *Box[T]) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchedAt = time.Time{}
}

// FetchedAt returns when the current value was stored; zero when absent.
func (b *Box[T]) FetchedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fetchedAt
}
