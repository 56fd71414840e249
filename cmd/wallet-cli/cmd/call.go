package cmd

import (
	"bytes"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-gateway/pkg/txbuilder"
)

var callFlags struct {
	privateKey string
	abiFile    string
	chainID    int64
	value      string
	gasPrice   string
	gasLimit   uint64
}

var callCmd = &cobra.Command{
	Use:   "call <contract-address> <method> [params...]",
	Short: "Build, sign and broadcast an arbitrary contract call",
	Long: `Encodes the method call against an ABI (the standard token ABI unless
--abi points at a JSON file), estimates gas, fetches the nonce, signs with
EIP-155 for --chain-id and broadcasts the raw transaction.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var contractABI *abi.ABI
		if callFlags.abiFile != "" {
			raw, err := os.ReadFile(callFlags.abiFile)
			if err != nil {
				return err
			}
			parsed, err := abi.JSON(bytes.NewReader(raw))
			if err != nil {
				return err
			}
			contractABI = &parsed
		}

		params := make([]any, 0, len(args)-2)
		for _, p := range args[2:] {
			params = append(params, p)
		}

		hash, err := service().SmartContractSend(cmd.Context(), txbuilder.Request{
			RPCURL:          rpcURL,
			ContractAddress: args[0],
			Method:          args[1],
			Params:          params,
			ABI:             contractABI,
			Value:           callFlags.value,
			GasPriceGwei:    callFlags.gasPrice,
			GasLimit:        callFlags.gasLimit,
			PrivateKey:      callFlags.privateKey,
			ChainID:         callFlags.chainID,
		})
		if err != nil {
			return err
		}

		color.Green("Transaction hash: %s", hash)
		return nil
	},
}

func init() {
	callCmd.Flags().StringVar(&callFlags.privateKey, "private-key", "", "signer private key (hex)")
	callCmd.Flags().StringVar(&callFlags.abiFile, "abi", "", "path to a contract ABI JSON file")
	callCmd.Flags().Int64Var(&callFlags.chainID, "chain-id", 0, "chain id for replay protection (required)")
	callCmd.Flags().StringVar(&callFlags.value, "value", "", "native value to attach, display units")
	callCmd.Flags().StringVar(&callFlags.gasPrice, "gas-price", "", "gas price override in gwei (default 100)")
	callCmd.Flags().Uint64Var(&callFlags.gasLimit, "gas-limit", 0, "gas limit override (0 = estimate)")
	callCmd.MarkFlagRequired("private-key")
	callCmd.MarkFlagRequired("chain-id")
	rootCmd.AddCommand(callCmd)
}
