package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	Owner string `json:"owner"`
	Count uint64 `json:"count"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var got stats
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)

	in := stats{Owner: "0xabc", Count: 3}
	require.NoError(t, c.Set(ctx, "k", in, time.Minute))
	in.Count = 99 // 缓存的是快照

	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, stats{Owner: "0xabc", Count: 3}, got)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
}

func TestMultiLevelCache_BackfillsL1(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemoryCache(time.Minute, time.Minute)
	l2 := NewMemoryCache(time.Minute, time.Minute)
	m := NewMultiLevelCache(l1, l2, time.Minute)

	require.NoError(t, l2.Set(ctx, "k", stats{Owner: "0x1", Count: 1}, time.Minute))

	var got stats
	require.NoError(t, m.Get(ctx, "k", &got))
	assert.Equal(t, uint64(1), got.Count)

	var fromL1 stats
	require.NoError(t, l1.Get(ctx, "k", &fromL1))
	assert.Equal(t, got, fromL1)
}

func TestMultiLevelCache_DeleteLocal(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemoryCache(time.Minute, time.Minute)
	l2 := NewMemoryCache(time.Minute, time.Minute)
	m := NewMultiLevelCache(l1, l2, time.Minute)

	require.NoError(t, m.Set(ctx, "k", stats{Count: 2}, time.Minute))
	require.NoError(t, m.DeleteLocal(ctx, "k"))

	var got stats
	assert.ErrorIs(t, l1.Get(ctx, "k", &got), ErrMiss)
	require.NoError(t, l2.Get(ctx, "k", &got))

	require.NoError(t, m.Delete(ctx, "k"))
	assert.ErrorIs(t, m.Get(ctx, "k", &got), ErrMiss)
}

type ttlRecorder struct {
	Cache
	ttls []time.Duration
}

func (r *ttlRecorder) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	r.ttls = append(r.ttls, ttl)
	return r.Cache.Set(ctx, key, value, ttl)
}

func TestMultiLevelCache_L1KeepsHalfTTL(t *testing.T) {
	ctx := context.Background()
	l1 := &ttlRecorder{Cache: NewMemoryCache(time.Minute, time.Minute)}
	l2 := NewMemoryCache(time.Minute, time.Minute)
	m := NewMultiLevelCache(l1, l2, 30*time.Second)

	// 写入与 L2 回填都只在 L1 保留一半 TTL
	require.NoError(t, m.Set(ctx, "a", stats{Count: 1}, 30*time.Second))
	require.NoError(t, l2.Set(ctx, "b", stats{Count: 2}, 30*time.Second))

	var got stats
	require.NoError(t, m.Get(ctx, "b", &got))
	assert.Equal(t, uint64(2), got.Count)

	assert.Equal(t, []time.Duration{15 * time.Second, 15 * time.Second}, l1.ttls)
}
