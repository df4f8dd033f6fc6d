package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRunLocker_Exclusive(t *testing.T) {
	l := NewInMemoryRunLocker()
	ctx := context.Background()

	release, ok, err := l.TryLock(ctx, "rent-generation:2026-10", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx, "rent-generation:2026-10", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "held lock is not granted twice")

	_, ok, _ = l.TryLock(ctx, "rent-generation:2026-11", time.Minute)
	assert.True(t, ok, "other keys are independent")

	release(ctx)
	_, ok, _ = l.TryLock(ctx, "rent-generation:2026-10", time.Minute)
	assert.True(t, ok)
}

func TestInMemoryRunLocker_Expiry(t *testing.T) {
	l := NewInMemoryRunLocker()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	staleRelease, ok, _ := l.TryLock(ctx, "job", time.Minute)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	freshRelease, ok, _ := l.TryLock(ctx, "job", time.Minute)
	require.True(t, ok, "expired lock can be taken over")

	// the stale holder must not free the new holder's lock
	staleRelease(ctx)
	_, ok, _ = l.TryLock(ctx, "job", time.Minute)
	assert.False(t, ok)

	freshRelease(ctx)
	_, ok, _ = l.TryLock(ctx, "job", time.Minute)
	assert.True(t, ok)
}

func TestInMemoryRunLocker_Concurrent(t *testing.T) {
	l := NewInMemoryRunLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := l.TryLock(ctx, "job", time.Minute); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, granted)
}
