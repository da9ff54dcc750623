package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gratuity-box/internal/service/gratuity"
	"gratuity-box/pkg/config"
	"gratuity-box/pkg/logger"
	"gratuity-box/pkg/sponsor"
	"gratuity-box/pkg/sui"
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "gratuity-cli",
	Short: "Gratuity Box 命令行工具",
	Long: `向 Sui 上的共享金库发送代付打赏。
支持构造调用、发送打赏、查询余额与金库统计。`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 将所有子命令添加到根命令并设置标志
// 子命令通过 RunE 返回错误，退出前各命令的 defer 已执行完
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "配置文件路径 (默认 ./config.yaml 或 ./config/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "输出调试日志")
}

// newService 按配置构造打赏服务，返回的 cleanup 需在命令结束时调用
func newService(cmd *cobra.Command) (*gratuity.Service, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		logger.Init("development")
	}

	ledger, err := sui.Dial(context.Background(), cfg.Sui.RpcUrl)
	if err != nil {
		return nil, nil, err
	}

	svc := gratuity.NewService(gratuity.Options{
		Config:   &cfg.Gratuity,
		CoinType: cfg.Sui.CoinType,
		Ledger:   ledger,
		Executor: sponsor.NewRelayExecutor(cfg.Sponsor.Url, cfg.Sponsor.ApiKey, cfg.Sui.Network, cfg.Sponsor.Timeout),
	})

	cleanup := func() {
		ledger.Close()
		logger.Sync()
	}
	return svc, cleanup, nil
}

// walletFlag 读取并规范化 --from/--address
func walletFlag(cmd *cobra.Command, name string) (gratuity.Address, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return "", nil
	}
	addr, err := sui.NormalizeAddress(raw)
	if err != nil {
		return "", err
	}
	return gratuity.Address(addr), nil
}
