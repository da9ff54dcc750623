package gratuity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gratuity-box/internal/event"
	"gratuity-box/internal/model"
	"gratuity-box/internal/service/mq"
	"gratuity-box/pkg/cache"
	"gratuity-box/pkg/config"
	"gratuity-box/pkg/logger"
	"gratuity-box/pkg/monitor"
	"gratuity-box/pkg/sponsor"
	"gratuity-box/pkg/utils/lock"
)

const (
	// BalanceErrorPlaceholder 余额查询失败时展示
	BalanceErrorPlaceholder = "Error"

	defaultSendGuardTTL = 2 * time.Minute
	defaultStatsTTL     = 30 * time.Second
)

// Options 构造 Service 所需依赖；Cache/Lock/Producer 为空时使用进程内默认实现
type Options struct {
	Config   *config.GratuityConfig
	CoinType string
	Ledger   LedgerQuery
	Executor sponsor.Executor
	Lock     lock.DistributedLock
	Cache    cache.Cache
	Producer mq.Producer
	// SendGuardTTL 单发送方锁的最长持有时间
	SendGuardTTL time.Duration
}

// Service 打赏业务：校验金额、选币、构造调用、代付提交、刷新金库统计
type Service struct {
	cfg      *config.GratuityConfig
	coinType string
	ledger   LedgerQuery
	executor sponsor.Executor
	lock     lock.DistributedLock
	cache    cache.Cache
	producer mq.Producer
	guardTTL time.Duration
	now      func() time.Time
}

func NewService(opts Options) *Service {
	s := &Service{
		cfg:      opts.Config,
		coinType: opts.CoinType,
		ledger:   opts.Ledger,
		executor: opts.Executor,
		lock:     opts.Lock,
		cache:    opts.Cache,
		producer: opts.Producer,
		guardTTL: opts.SendGuardTTL,
		now:      time.Now,
	}
	if s.cfg == nil {
		s.cfg = &config.GratuityConfig{PackageID: config.PlaceholderID, VaultID: config.PlaceholderID}
	}
	if s.coinType == "" {
		s.coinType = "0x2::sui::SUI"
	}
	if s.lock == nil {
		s.lock = lock.NewMemoryLock()
	}
	if s.cache == nil {
		s.cache = cache.NewMemoryCache(s.statsTTL(), time.Minute)
	}
	if s.producer == nil {
		s.producer = mq.NopProducer{}
	}
	if s.guardTTL <= 0 {
		s.guardTTL = defaultSendGuardTTL
	}
	return s
}

// SendsEnabled 配置了真实的 package/vault 时才允许发送
func (s *Service) SendsEnabled() bool {
	return s.cfg.Operable()
}

func (s *Service) PackageID() string { return s.cfg.PackageID }
func (s *Service) VaultID() string   { return s.cfg.VaultID }

func (s *Service) statsTTL() time.Duration {
	if s.cfg != nil && s.cfg.StatsTTL > 0 {
		return s.cfg.StatsTTL
	}
	return defaultStatsTTL
}

func (s *Service) statsKey() string {
	return "gratuity:vault_stats:" + s.cfg.VaultID
}

// BuildResult 构造好但未提交的调用
type BuildResult struct {
	Sender          string                `json:"sender"`
	Amount          string                `json:"amount"`
	AmountBaseUnits uint64                `json:"amount_base_units"`
	CoinObjectID    string                `json:"coin_object_id"`
	Call            model.CallDescription `json:"call"`
	Digest          string                `json:"digest"`
}

// SendResult 一次成功打赏的结果
type SendResult struct {
	Digest          string     `json:"digest"`
	Sender          string     `json:"sender"`
	Amount          string     `json:"amount"`
	AmountBaseUnits uint64     `json:"amount_base_units"`
	CoinObjectID    string     `json:"coin_object_id"`
	Stats           *StatsView `json:"stats"` // 刷新失败时为空，不影响发送结果
}

// Build 走到构造调用为止，不提交
func (s *Service) Build(ctx context.Context, session WalletSession, amount string) (*BuildResult, error) {
	sender, mist, err := s.precheck(session, amount)
	if err != nil {
		return nil, err
	}

	call, selected, err := s.prepare(ctx, sender, mist)
	if err != nil {
		return nil, err
	}

	digest, err := Digest(call)
	if err != nil {
		return nil, fmt.Errorf("digest call: %w", err)
	}

	return &BuildResult{
		Sender:          sender,
		Amount:          ToDisplay(mist),
		AmountBaseUnits: mist,
		CoinObjectID:    selected.ObjectID,
		Call:            call,
		Digest:          digest,
	}, nil
}

// Send 打赏主流程
// 1. 配置/钱包/金额校验 (不发起任何网络请求)
// 2. 获取单发送方锁
// 3. 拉取最新 Coin 列表、选币、构造调用
// 4. 代付提交，成功后刷新金库统计并发布事件
func (s *Service) Send(ctx context.Context, session WalletSession, amount string) (res *SendResult, err error) {
	defer func() {
		if err != nil {
			monitor.RecordSendFailure(FailureReason(err))
		}
	}()

	sender, mist, err := s.precheck(session, amount)
	if err != nil {
		return nil, err
	}

	guardKey := "gratuity:send:" + sender
	token, locked, err := s.lock.Acquire(ctx, guardKey, s.guardTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire send guard: %w", err)
	}
	if !locked {
		return nil, ErrSendInFlight
	}
	defer func() {
		// 请求 ctx 可能已取消，用独立 ctx 释放
		if relErr := s.lock.Release(context.Background(), guardKey, token); relErr != nil {
			logger.Error("release send guard failed", zap.String("sender", sender), zap.Error(relErr))
		}
	}()

	call, selected, err := s.prepare(ctx, sender, mist)
	if err != nil {
		return nil, err
	}

	log := logger.With(
		zap.String("sender", sender),
		zap.Uint64("amount_mist", mist),
		zap.String("coin", selected.ObjectID),
	)
	log.Info("submitting sponsored gratuity")

	start := s.now()
	out := <-sponsor.Go(ctx, s.executor, call, sender)
	if out.Err != nil {
		log.Error("sponsored execution failed", zap.Error(out.Err))
		return nil, &ExecutionFailedError{Message: out.Err.Error()}
	}
	took := s.now().Sub(start)

	log.Info("gratuity sent", zap.String("digest", out.Result.Digest), zap.Duration("took", took))
	amountSui, _ := mistToDecimal(mist).Float64()
	monitor.RecordSent(amountSui, took)

	res = &SendResult{
		Digest:          out.Result.Digest,
		Sender:          sender,
		Amount:          ToDisplay(mist),
		AmountBaseUnits: mist,
		CoinObjectID:    selected.ObjectID,
	}

	// 成功后刷新统计，失败只记录日志
	if delErr := s.cache.Delete(ctx, s.statsKey()); delErr != nil {
		log.Warn("invalidate vault stats cache failed", zap.Error(delErr))
	}
	if stats, statsErr := s.RefreshVaultStats(ctx); statsErr != nil {
		log.Error("refresh vault stats after send failed", zap.Error(statsErr))
	} else {
		res.Stats = stats
	}

	s.publishSent(ctx, res, selected)
	return res, nil
}

func (s *Service) precheck(session WalletSession, amount string) (string, uint64, error) {
	if !s.cfg.Operable() {
		return "", 0, ErrNotConfigured
	}
	if session == nil {
		return "", 0, ErrWalletNotConnected
	}
	sender, ok := session.CurrentAddress()
	if !ok || sender == "" {
		return "", 0, ErrWalletNotConnected
	}
	mist, err := ToBaseUnits(amount)
	if err != nil {
		return "", 0, err
	}
	return sender, mist, nil
}

// prepare 每次都重新拉取 Coin 列表，不使用缓存
func (s *Service) prepare(ctx context.Context, sender string, mist uint64) (model.CallDescription, model.FundObject, error) {
	coins, err := s.ledger.ListFundObjects(ctx, sender, s.coinType)
	if err != nil {
		monitor.RecordQueryFailure("getCoins")
		return model.CallDescription{}, model.FundObject{}, &QueryFailedError{Query: "getCoins", Err: err}
	}

	selected, err := Plan(coins, mist)
	if err != nil {
		return model.CallDescription{}, model.FundObject{}, err
	}

	return BuildCallDescription(s.cfg.VaultID, s.cfg.PackageID, selected, mist), selected, nil
}

func (s *Service) publishSent(ctx context.Context, res *SendResult, selected model.FundObject) {
	payload, err := json.Marshal(event.GratuitySentEvent{
		Digest:          res.Digest,
		Sender:          res.Sender,
		VaultID:         s.cfg.VaultID,
		CoinObjectID:    selected.ObjectID,
		AmountBaseUnits: res.AmountBaseUnits,
		Amount:          res.Amount,
		SentAt:          s.now().UTC(),
	})
	if err != nil {
		logger.Error("encode gratuity event failed", zap.Error(err))
		return
	}
	if err := s.producer.Publish(ctx, event.TopicGratuitySent, res.Sender, payload); err != nil {
		logger.Warn("publish gratuity event failed", zap.String("digest", res.Digest), zap.Error(err))
	}
}

// StatsView 金库统计的展示形式
type StatsView struct {
	model.VaultStats
	TotalDisplay    string `json:"total_display"` // 3 位小数
	OwnerShort      string `json:"owner_short"`
	LastTipperShort string `json:"last_tipper_short,omitempty"`
}

func newStatsView(st model.VaultStats) *StatsView {
	v := &StatsView{
		VaultStats:   st,
		TotalDisplay: FormatSui(st.TotalGratuities, 3),
		OwnerShort:   ShortAddress(st.Owner),
	}
	if st.LastTipper != "" {
		v.LastTipperShort = ShortAddress(st.LastTipper)
	}
	return v
}

// VaultStats 优先读缓存，未命中时查询链上
func (s *Service) VaultStats(ctx context.Context) (*StatsView, error) {
	if !config.IsConfigured(s.cfg.VaultID) {
		return nil, ErrNotConfigured
	}

	var cached model.VaultStats
	if err := s.cache.Get(ctx, s.statsKey(), &cached); err == nil {
		return newStatsView(cached), nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("vault stats cache read failed", zap.Error(err))
	}

	return s.RefreshVaultStats(ctx)
}

// RefreshVaultStats 直接查询链上并覆盖缓存
func (s *Service) RefreshVaultStats(ctx context.Context) (*StatsView, error) {
	if !config.IsConfigured(s.cfg.VaultID) {
		return nil, ErrNotConfigured
	}

	fields, err := s.ledger.GetObjectFields(ctx, s.cfg.VaultID)
	if err != nil {
		monitor.RecordQueryFailure("getObject")
		return nil, &QueryFailedError{Query: "getObject", Err: err}
	}

	stats, err := ParseVaultStats(fields)
	if err != nil {
		monitor.RecordQueryFailure("getObject")
		return nil, &QueryFailedError{Query: "getObject", Err: err}
	}
	monitor.RecordStatsRefresh(stats.GratuityCount)

	if err := s.cache.Set(ctx, s.statsKey(), stats, s.statsTTL()); err != nil {
		logger.Warn("vault stats cache write failed", zap.Error(err))
	}
	return newStatsView(stats), nil
}

type localDeleter interface {
	DeleteLocal(ctx context.Context, key string) error
}

// InvalidateLocalStats 收到其他实例的打赏事件后调用；共享缓存由发送方实例负责刷新
func (s *Service) InvalidateLocalStats(ctx context.Context) error {
	if ld, ok := s.cache.(localDeleter); ok {
		return ld.DeleteLocal(ctx, s.statsKey())
	}
	return s.cache.Delete(ctx, s.statsKey())
}

// HandleSentEvent mq 消费回调
func (s *Service) HandleSentEvent(msg *mq.Message) error {
	var ev event.GratuitySentEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		// 格式错误的消息直接丢弃，避免反复投递
		logger.Warn("drop malformed gratuity event", zap.String("id", msg.ID), zap.Error(err))
		return nil
	}
	if ev.VaultID != s.cfg.VaultID {
		return nil
	}
	logger.Debug("gratuity event received", zap.String("digest", ev.Digest), zap.String("sender", ev.Sender))
	return s.InvalidateLocalStats(context.Background())
}

// ParseVaultStats 将金库对象字段投影为 VaultStats，缺省的数值按 0 处理
func ParseVaultStats(fields map[string]string) (model.VaultStats, error) {
	total, err := parseCount(fields["total_gratuities"])
	if err != nil {
		return model.VaultStats{}, fmt.Errorf("total_gratuities: %w", err)
	}
	count, err := parseCount(fields["gratuity_count"])
	if err != nil {
		return model.VaultStats{}, fmt.Errorf("gratuity_count: %w", err)
	}
	return model.VaultStats{
		Owner:           fields["owner"],
		TotalGratuities: total,
		GratuityCount:   count,
		LastTipper:      fields["last_tipper"],
	}, nil
}

func parseCount(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

// BalanceView 钱包余额，4 位小数
type BalanceView struct {
	Address string `json:"address"`
	Mist    uint64 `json:"mist"`
	Display string `json:"display"`
}

// Balance 查询发送方 SUI 总余额，不缓存
func (s *Service) Balance(ctx context.Context, session WalletSession) (*BalanceView, error) {
	if session == nil {
		return nil, ErrWalletNotConnected
	}
	addr, ok := session.CurrentAddress()
	if !ok {
		return nil, ErrWalletNotConnected
	}

	mist, err := s.ledger.GetBalance(ctx, addr, s.coinType)
	if err != nil {
		monitor.RecordQueryFailure("getBalance")
		return nil, &QueryFailedError{Query: "getBalance", Err: err}
	}
	return &BalanceView{Address: addr, Mist: mist, Display: FormatSui(mist, 4)}, nil
}

// DashboardView 页面展示所需的全部数据；查询失败只影响对应字段
type DashboardView struct {
	Connected    bool       `json:"connected"`
	Address      string     `json:"address,omitempty"`
	ShortAddress string     `json:"short_address,omitempty"`
	Balance      string     `json:"balance,omitempty"`
	Stats        *StatsView `json:"stats"`
	SendsEnabled bool       `json:"sends_enabled"`
	PackageID    string     `json:"package_id"`
	VaultID      string     `json:"vault_id"`
}

func (s *Service) Dashboard(ctx context.Context, session WalletSession) *DashboardView {
	view := &DashboardView{
		SendsEnabled: s.cfg.Operable(),
		PackageID:    s.cfg.PackageID,
		VaultID:      s.cfg.VaultID,
	}

	if session != nil {
		if addr, ok := session.CurrentAddress(); ok {
			view.Connected = true
			view.Address = addr
			view.ShortAddress = ShortAddress(addr)

			bal, err := s.Balance(ctx, session)
			if err != nil {
				logger.Error("fetch balance failed", zap.String("address", addr), zap.Error(err))
				view.Balance = BalanceErrorPlaceholder
			} else {
				view.Balance = bal.Display
			}
		}
	}

	stats, err := s.VaultStats(ctx)
	switch {
	case err == nil:
		view.Stats = stats
	case errors.Is(err, ErrNotConfigured):
	default:
		logger.Error("fetch vault stats failed", zap.Error(err))
	}

	return view
}
