package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	walletservice "wallet-gateway/internal/service/wallet"
)

var balanceTokenAddress string

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Query a native or token balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := service().GetBalance(cmd.Context(), walletservice.BalanceRequest{
			Address:      args[0],
			RPCURL:       rpcURL,
			TokenAddress: balanceTokenAddress,
		})
		if err != nil {
			return err
		}

		if balanceTokenAddress != "" {
			fmt.Printf("Token %s\n", balanceTokenAddress)
		}
		color.Green("Balance: %s", balance)
		return nil
	},
}

var tokenInfoCmd = &cobra.Command{
	Use:   "token-info <token-address>",
	Short: "Read name, symbol, decimals and total supply of a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := service().GetTokenInfo(cmd.Context(), rpcURL, args[0])
		if err != nil {
			return err
		}

		color.Green("%s (%s)", info.Name, info.Symbol)
		fmt.Printf("Address:      %s\n", info.Address)
		fmt.Printf("Decimals:     %d\n", info.Decimals)
		fmt.Printf("Total supply: %s\n", info.TotalSupply)
		return nil
	},
}

func init() {
	balanceCmd.Flags().StringVar(&balanceTokenAddress, "token", "", "token contract address (native balance when omitted)")
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(tokenInfoCmd)
}
