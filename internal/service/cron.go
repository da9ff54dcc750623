package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gratuity-box/internal/service/gratuity"
	"gratuity-box/pkg/logger"
	"gratuity-box/pkg/utils/lock"
)

const statsRefreshLockKey = "cron:lock:vault_stats"

// StatsRefresher 由 gratuity.Service 实现
type StatsRefresher interface {
	RefreshVaultStats(ctx context.Context) (*gratuity.StatsView, error)
}

type CronService struct {
	cron    *cron.Cron
	locker  lock.DistributedLock
	stats   StatsRefresher
	spec    string
	timeout time.Duration
}

// NewCronService locker 为 Redis 锁时多实例只有一个执行刷新
func NewCronService(stats StatsRefresher, locker lock.DistributedLock, spec string) *CronService {
	if spec == "" {
		spec = "@every 1m"
	}
	if locker == nil {
		locker = lock.NewMemoryLock()
	}
	return &CronService{
		cron:    cron.New(),
		locker:  locker,
		stats:   stats,
		spec:    spec,
		timeout: 20 * time.Second,
	}
}

func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RefreshVaultStats); err != nil {
		return fmt.Errorf("register vault stats job %q: %w", s.spec, err)
	}

	s.cron.Start()
	logger.Info("Cron Service started", zap.String("vault_stats", s.spec))
	return nil
}

func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron Service stopped")
}

// RefreshVaultStats 定时刷新金库统计缓存
func (s *CronService) RefreshVaultStats() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	// 1. 获取锁，已有实例在运行则跳过
	token, locked, err := s.locker.Acquire(ctx, statsRefreshLockKey, s.timeout)
	if err != nil || !locked {
		logger.Debug("RefreshVaultStats: lock not acquired, skipping", zap.Error(err))
		return
	}
	defer func() { _ = s.locker.Release(context.Background(), statsRefreshLockKey, token) }()

	// 2. 刷新
	stats, err := s.stats.RefreshVaultStats(ctx)
	if err != nil {
		logger.Error("RefreshVaultStats failed", zap.Error(err))
		return
	}
	logger.Debug("vault stats refreshed",
		zap.Uint64("gratuity_count", stats.GratuityCount),
		zap.String("total", stats.TotalDisplay))
}
