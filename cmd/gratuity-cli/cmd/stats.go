package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "查看金库统计",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newService(cmd)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		st, err := svc.RefreshVaultStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Vault: %s\n", svc.VaultID())
		fmt.Printf("Total SUI Received: %s\n", st.TotalDisplay)
		fmt.Printf("Gratuities: %d\n", st.GratuityCount)
		fmt.Printf("Owner: %s\n", st.OwnerShort)
		if st.LastTipperShort != "" {
			fmt.Printf("Last tipper: %s\n", st.LastTipperShort)
		}
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "查询钱包 SUI 余额",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := walletFlag(cmd, "address")
		if err != nil {
			return fmt.Errorf("地址无效: %w", err)
		}

		svc, cleanup, err := newService(cmd)
		if err != nil {
			return fmt.Errorf("初始化失败: %w", err)
		}
		defer cleanup()

		bal, err := svc.Balance(cmd.Context(), addr)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s SUI\n", bal.Address, bal.Display)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().String("address", "", "钱包地址")
	balanceCmd.MarkFlagRequired("address")
}
