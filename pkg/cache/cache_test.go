package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_FetchesOnFirstCall(t *testing.T) {
	box := New[string](15 * time.Minute)

	calls := 0
	v, err := box.Get(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, 1, calls)
}

func TestGet_ServesCachedWithinWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	box := New[string](15 * time.Minute)
	box.now = func() time.Time { return now }

	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, err := box.Get(context.Background(), fetch)
	require.NoError(t, err)

	// 14:59 into the window the value is still valid.
	now = now.Add(15*time.Minute - time.Second)
	_, err = box.Get(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGet_RefetchesAfterExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	box := New[string](15 * time.Minute)
	box.now = func() time.Time { return now }

	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, err := box.Get(context.Background(), fetch)
	require.NoError(t, err)

	// Exactly at the window edge the value counts as expired.
	now = now.Add(15 * time.Minute)
	_, err = box.Get(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGet_FetchErrorPropagates(t *testing.T) {
	box := New[int](time.Minute)

	_, err := box.Get(context.Background(), func(ctx context.Context) (int, error) {
		return 0, assert.AnError
	})
	assert.Error(t, err)

	// The failed fetch stores nothing; the next call tries again.
	v, err := box.Get(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	box := New[string](time.Hour)

	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, err := box.Get(context.Background(), fetch)
	require.NoError(t, err)

	box.Invalidate()
	assert.True(t, box.FetchedAt().IsZero())

	_, err = box.Get(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGet_ConcurrentCallersCollapse(t *testing.T) {
	box := New[string](time.Hour)

	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := box.Get(context.Background(), fetch)
			assert.NoError(t, err)
			assert.Equal(t, "v", v)
		}()
	}

	close(start)
	// Give the goroutines time to pile up on the singleflight key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, calls, 2)
}

func TestPeek_EmptyBox(t *testing.T) {
	box := New[string](time.Hour)

	_, ok := box.Peek()
	assert.False(t, ok)
}
