package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	walletservice "wallet-gateway/internal/service/wallet"
)

var transferFlags struct {
	privateKey   string
	tokenAddress string
	gasPrice     string
	gasLimit     uint64
	data         string
}

var transferCmd = &cobra.Command{
	Use:   "transfer <recipient> <amount>",
	Short: "Send native value or tokens",
	Long:  `Submits a native value transfer, or a token transfer when --token is given. Amount is in display units.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := service().Transfer(cmd.Context(), walletservice.TransferRequest{
			Recipient:    args[0],
			Amount:       args[1],
			RPCURL:       rpcURL,
			PrivateKey:   transferFlags.privateKey,
			GasPriceGwei: transferFlags.gasPrice,
			TokenAddress: transferFlags.tokenAddress,
			Data:         transferFlags.data,
			GasLimit:     transferFlags.gasLimit,
		})
		if err != nil {
			return err
		}

		color.Green("Transaction hash: %s", hash)
		return nil
	},
}

func init() {
	transferCmd.Flags().StringVar(&transferFlags.privateKey, "private-key", "", "sender private key (hex)")
	transferCmd.Flags().StringVar(&transferFlags.tokenAddress, "token", "", "token contract address (native transfer when omitted)")
	transferCmd.Flags().StringVar(&transferFlags.gasPrice, "gas-price", "", "gas price override in gwei")
	transferCmd.Flags().Uint64Var(&transferFlags.gasLimit, "gas-limit", 0, "gas limit override (0 = estimate)")
	transferCmd.Flags().StringVar(&transferFlags.data, "data", "", "UTF-8 payload for native transfers")
	transferCmd.MarkFlagRequired("private-key")
	rootCmd.AddCommand(transferCmd)
}
