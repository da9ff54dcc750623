package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gratuity-box/internal/event"
	"gratuity-box/internal/handler"
	"gratuity-box/internal/server"
	"gratuity-box/internal/service"
	"gratuity-box/internal/service/gratuity"
	"gratuity-box/internal/service/mq"
	"gratuity-box/pkg/cache"
	"gratuity-box/pkg/config"
	"gratuity-box/pkg/database"
	"gratuity-box/pkg/logger"
	"gratuity-box/pkg/sponsor"
	"gratuity-box/pkg/sui"
	"gratuity-box/pkg/utils/lock"

	_ "gratuity-box/docs/swagger"
)

// @title Gratuity Box API
// @version 1.0
// @description Sponsored SUI gratuities into a shared vault

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// 0. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// 1. 初始化 Logger
	logger.Init(cfg.App.Env)
	defer logger.Sync()

	if !cfg.Gratuity.Operable() {
		logger.Warn("package_id / vault_id 未配置，服务只读运行，发送将被拒绝",
			zap.String("package_id", cfg.Gratuity.PackageID),
			zap.String("vault_id", cfg.Gratuity.VaultID))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. 连接 Redis (可选)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
		defer rdb.Close()
		logger.Info("Redis 连接成功", zap.String("addr", cfg.Redis.Addr))
	}

	// 3. 缓存与锁
	var statsCache cache.Cache = cache.NewMemoryCache(cfg.Gratuity.StatsTTL, time.Minute)
	var locker lock.DistributedLock = lock.NewMemoryLock()
	if rdb != nil {
		statsCache = cache.NewMultiLevelCache(statsCache, cache.NewRedisCache(rdb, "gratuity:"), cfg.Gratuity.StatsTTL)
		locker = lock.NewRedisLock(rdb)
	}

	// 4. 消息队列
	producer, consumer := newMQ(cfg, rdb)
	if closer, ok := producer.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// 5. 链上查询与代付执行
	ledger, err := sui.Dial(ctx, cfg.Sui.RpcUrl)
	if err != nil {
		logger.Fatal("Sui RPC 初始化失败", zap.Error(err))
	}
	defer ledger.Close()

	executor := sponsor.NewRelayExecutor(cfg.Sponsor.Url, cfg.Sponsor.ApiKey, cfg.Sui.Network, cfg.Sponsor.Timeout)

	// 6. 业务服务
	gratuitySvc := gratuity.NewService(gratuity.Options{
		Config:   &cfg.Gratuity,
		CoinType: cfg.Sui.CoinType,
		Ledger:   ledger,
		Executor: executor,
		Lock:     locker,
		Cache:    statsCache,
		Producer: producer,
	})

	// 7. 首次加载金库统计
	if cfg.Gratuity.Operable() {
		if _, err := gratuitySvc.RefreshVaultStats(ctx); err != nil {
			logger.Error("初始加载金库统计失败", zap.Error(err))
		}
	}

	// 8. 订阅打赏事件，清理本实例缓存
	subDone := make(chan struct{})
	go func() {
		defer close(subDone)
		if err := consumer.Subscribe(ctx, event.TopicGratuitySent, gratuitySvc.HandleSentEvent); err != nil {
			logger.Error("订阅打赏事件失败", zap.Error(err))
		}
	}()
	// 先取消订阅循环再关闭消费者
	defer func() {
		cancel()
		<-subDone
		_ = consumer.Close()
	}()

	// 9. 定时刷新
	cronSvc := service.NewCronService(gratuitySvc, locker, cfg.Gratuity.StatsRefreshCron)
	if err := cronSvc.Start(); err != nil {
		logger.Fatal("定时任务启动失败", zap.Error(err))
	}
	defer cronSvc.Stop()

	// 10. HTTP + gRPC
	r := server.NewHTTPRouter(handler.NewGratuityHandler(gratuitySvc))
	grpcServer, _ := server.NewGRPCServer(gratuitySvc.SendsEnabled())

	app, err := server.New(server.Config{
		HttpPort: cfg.App.HttpPort,
		GrpcPort: cfg.App.GrpcPort,
	}, r, grpcServer)
	if err != nil {
		logger.Fatal("应用启动失败", zap.Error(err))
	}

	// 运行 (阻塞)
	app.Run()
	logger.Info("系统已退出")
}

func newMQ(cfg *config.Config, rdb *redis.Client) (mq.Producer, mq.Consumer) {
	// 每个实例独立的消费组，保证所有实例都收到失效事件
	host, _ := os.Hostname()
	group := cfg.MQ.Group + "-" + host

	switch cfg.MQ.Type {
	case "kafka":
		logger.Info("使用 Kafka 作为消息队列", zap.Strings("brokers", cfg.MQ.Brokers))
		return mq.NewKafkaProducer(cfg.MQ.Brokers), mq.NewKafkaConsumer(cfg.MQ.Brokers, group, event.TopicGratuitySent)
	case "redis":
		if rdb == nil {
			logger.Fatal("mq.type=redis 需要 redis.enabled=true")
		}
		logger.Info("使用 Redis Streams 作为消息队列")
		return mq.NewRedisProducer(rdb, 10000), mq.NewRedisConsumer(rdb, group, host)
	default:
		return mq.NopProducer{}, mq.NopConsumer{}
	}
}
