package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache miss")

// Cache 定义通用缓存接口，值以 JSON 语义存取
type Cache interface {
	// Set 写入缓存，ttl <= 0 时使用实现的默认过期时间
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get 读取缓存并解码到 target，未命中返回 ErrMiss
	Get(ctx context.Context, key string, target interface{}) error
	Delete(ctx context.Context, key string) error
}
