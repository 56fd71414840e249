package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	walletservice "wallet-gateway/internal/service/wallet"
	"wallet-gateway/pkg/account"
	"wallet-gateway/pkg/token"
)

var rpcURL string

var rootCmd = &cobra.Command{
	Use:   "wallet-cli",
	Short: "Command line wallet for EVM networks",
	Long: `wallet-cli drives the same core as wallet-server: generate and
inspect wallets, query balances and token metadata, and submit native,
token, or arbitrary contract-call transactions.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", "http://localhost:8545", "JSON-RPC endpoint")
}

// service builds a request-scoped wallet service with the standard defaults.
func service() *walletservice.Service {
	return walletservice.New(walletservice.Config{
		DefaultABI:     token.MustStandardABI(),
		DerivationPath: account.DefaultDerivationPath,
	})
}
