package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryHold struct {
	token   string
	expires time.Time
}

// MemoryLock 单实例进程内实现
type MemoryLock struct {
	mu    sync.Mutex
	held  map[string]memoryHold
	clock func() time.Time
}

func NewMemoryLock() *MemoryLock {
	return &MemoryLock{
		held:  make(map[string]memoryHold),
		clock: time.Now,
	}
}

func (l *MemoryLock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[key]; ok && now.Before(h.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = memoryHold{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (l *MemoryLock) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.held[key]; ok && h.token == token {
		delete(l.held, key)
	}
	return nil
}
