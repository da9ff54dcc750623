package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gratuity-box/pkg/logger"
)

// MultiLevelCache L1 内存 + L2 Redis
type MultiLevelCache struct {
	local  Cache
	remote Cache
	ttl    time.Duration // 业务 TTL，L1 按一半保留
}

func NewMultiLevelCache(local, remote Cache, ttl time.Duration) *MultiLevelCache {
	return &MultiLevelCache{
		local:  local,
		remote: remote,
		ttl:    ttl,
	}
}

func (m *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	// L1 只保留一半 TTL，缩短其他实例写入后的不一致窗口
	if err := m.local.Set(ctx, key, value, ttl/2); err != nil {
		logger.Warn("L1 cache set failed", zap.String("key", key), zap.Error(err))
	}
	return m.remote.Set(ctx, key, value, ttl)
}

func (m *MultiLevelCache) Get(ctx context.Context, key string, target interface{}) error {
	// 1. 查 L1
	if err := m.local.Get(ctx, key, target); err == nil {
		return nil
	}

	// 2. 查 L2，命中后回写 L1
	if err := m.remote.Get(ctx, key, target); err != nil {
		return err
	}
	if err := m.local.Set(ctx, key, target, m.ttl/2); err != nil {
		logger.Warn("L1 cache backfill failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (m *MultiLevelCache) Delete(ctx context.Context, key string) error {
	_ = m.local.Delete(ctx, key)
	return m.remote.Delete(ctx, key)
}

// DeleteLocal 只清理本实例 L1，用于收到其他实例的失效事件
func (m *MultiLevelCache) DeleteLocal(ctx context.Context, key string) error {
	return m.local.Delete(ctx, key)
}
