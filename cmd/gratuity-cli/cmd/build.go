package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// buildCmd 只构造调用描述，不提交
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "构造打赏调用 (不提交)",
	Long:  `选择 Coin 并输出 split + deposit_gratuity 调用描述 JSON，可交给外部签名工具。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetString("amount")
		outputFile, _ := cmd.Flags().GetString("output")
		from, err := walletFlag(cmd, "from")
		if err != nil {
			return fmt.Errorf("地址无效: %w", err)
		}

		svc, cleanup, err := newService(cmd)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		res, err := svc.Build(cmd.Context(), from, amount)
		if err != nil {
			return err
		}

		data, _ := json.MarshalIndent(res, "", "  ")
		if outputFile == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("保存失败: %w", err)
		}
		fmt.Printf("✅ 调用已构造!\n文件: %s\nDigest: %s\n", outputFile, res.Digest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("from", "", "发送方地址")
	buildCmd.Flags().String("amount", "", "金额 (SUI)")
	buildCmd.Flags().StringP("output", "o", "", "输出文件 (默认打印到终端)")

	buildCmd.MarkFlagRequired("from")
	buildCmd.MarkFlagRequired("amount")
}
