package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderID 未配置时使用的占位对象 ID
const PlaceholderID = "0x0"

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MQ       MQConfig       `mapstructure:"mq"`
	Sui      SuiConfig      `mapstructure:"sui"`
	Gratuity GratuityConfig `mapstructure:"gratuity"`
	Sponsor  SponsorConfig  `mapstructure:"sponsor"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
	GrpcPort string `mapstructure:"grpc_port"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MQConfig struct {
	Type    string   `mapstructure:"type"` // "none", "redis" or "kafka"
	Brokers []string `mapstructure:"brokers"`
	Group   string   `mapstructure:"group"`
}

type SuiConfig struct {
	RpcUrl   string `mapstructure:"rpc_url"`
	CoinType string `mapstructure:"coin_type"`
	Network  string `mapstructure:"network"`
}

type GratuityConfig struct {
	PackageID        string        `mapstructure:"package_id"`
	VaultID          string        `mapstructure:"vault_id"`
	TipJarID         string        `mapstructure:"tip_jar_id"` // 旧版配置项，仅作为 vault_id 的回退
	StatsTTL         time.Duration `mapstructure:"stats_ttl"`
	StatsRefreshCron string        `mapstructure:"stats_refresh_cron"`
}

type SponsorConfig struct {
	Url     string        `mapstructure:"url"`
	ApiKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Operable reports whether both on-chain identifiers are real.
// A placeholder configuration still boots; it only refuses to send.
func (g GratuityConfig) Operable() bool {
	return IsConfigured(g.PackageID) && IsConfigured(g.VaultID)
}

// IsConfigured 非空且不是占位符
func IsConfigured(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != PlaceholderID
}

// ResolveVaultID picks the vault identifier: primary, then legacy, then the placeholder.
// An explicit placeholder in primary wins over legacy.
func ResolveVaultID(primary, legacy string) string {
	if p := strings.TrimSpace(primary); p != "" {
		return p
	}
	if l := strings.TrimSpace(legacy); l != "" {
		return l
	}
	return PlaceholderID
}

// ResolvePackageID defaults an empty package identifier to the placeholder.
func ResolvePackageID(id string) string {
	if p := strings.TrimSpace(id); p != "" {
		return p
	}
	return PlaceholderID
}

// Load 读取 config.yaml (当前目录或 ./config) 与环境变量，返回完整配置
func Load() (*Config, error) {
	return load(viper.New(), "")
}

// LoadFile 读取指定的配置文件
func LoadFile(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 环境变量设置 (GRATUITY_VAULT_ID 覆盖 gratuity.vault_id)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// vault_id 为空时回退到 tip_jar_id
	cfg.Gratuity.VaultID = ResolveVaultID(cfg.Gratuity.VaultID, cfg.Gratuity.TipJarID)
	cfg.Gratuity.PackageID = ResolvePackageID(cfg.Gratuity.PackageID)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.grpc_port", "50051")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("mq.type", "none")
	v.SetDefault("mq.brokers", []string{"localhost:9092"})
	v.SetDefault("mq.group", "gratuity_stats")

	v.SetDefault("sui.rpc_url", "https://fullnode.testnet.sui.io:443")
	v.SetDefault("sui.coin_type", "0x2::sui::SUI")
	v.SetDefault("sui.network", "testnet")

	// 默认留空，加载后再按 vault_id > tip_jar_id > 0x0 解析
	v.SetDefault("gratuity.package_id", "")
	v.SetDefault("gratuity.vault_id", "")
	v.SetDefault("gratuity.tip_jar_id", "")
	v.SetDefault("gratuity.stats_ttl", 30*time.Second)
	v.SetDefault("gratuity.stats_refresh_cron", "@every 1m")

	v.SetDefault("sponsor.url", "http://localhost:3001")
	v.SetDefault("sponsor.api_key", "")
	v.SetDefault("sponsor.timeout", 30*time.Second)
}
