package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLock_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLock()

	token, ok, err := l.Acquire(ctx, "send:0xabc", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, _ = l.Acquire(ctx, "send:0xabc", time.Minute)
	assert.False(t, ok, "second acquire must fail while held")

	_, ok, _ = l.Acquire(ctx, "send:0xdef", time.Minute)
	assert.True(t, ok, "different keys are independent")

	require.NoError(t, l.Release(ctx, "send:0xabc", token))
	_, ok, _ = l.Acquire(ctx, "send:0xabc", time.Minute)
	assert.True(t, ok)
}

func TestMemoryLock_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	l := NewMemoryLock()
	l.clock = func() time.Time { return now }

	_, ok, _ := l.Acquire(ctx, "k", 10*time.Second)
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	_, ok, _ = l.Acquire(ctx, "k", 10*time.Second)
	assert.True(t, ok, "expired lock can be taken again")
}

func TestMemoryLock_StaleReleaseKeepsNewHolder(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	l := NewMemoryLock()
	l.clock = func() time.Time { return now }

	first, ok, _ := l.Acquire(ctx, "k", 10*time.Second)
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	second, ok, _ := l.Acquire(ctx, "k", 10*time.Second)
	require.True(t, ok)

	require.NoError(t, l.Release(ctx, "k", first))
	_, ok, _ = l.Acquire(ctx, "k", 10*time.Second)
	assert.False(t, ok, "old holder must not release the new holder's lock")

	require.NoError(t, l.Release(ctx, "k", second))
	_, ok, _ = l.Acquire(ctx, "k", 10*time.Second)
	assert.True(t, ok)
}

func TestMemoryLock_Concurrent(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLock()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := l.Acquire(ctx, "same", time.Minute); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}
