package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "发送打赏 (代付 Gas)",
	Long:  `从 --from 钱包中选择一个 Coin，拆出 --amount SUI 存入金库，由代付中继提交。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetString("amount")
		from, err := walletFlag(cmd, "from")
		if err != nil {
			return fmt.Errorf("地址无效: %w", err)
		}

		svc, cleanup, err := newService(cmd)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		res, err := svc.Send(cmd.Context(), from, amount)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Sent %s SUI (gas-free)\n交易: %s\n使用 Coin: %s\n", res.Amount, res.Digest, res.CoinObjectID)
		if res.Stats != nil {
			fmt.Printf("金库累计: %s SUI / %d 笔\n", res.Stats.TotalDisplay, res.Stats.GratuityCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().String("from", "", "发送方地址")
	sendCmd.Flags().String("amount", "", "金额 (SUI)，例如 0.1")

	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("amount")
}
