package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var inspectMnemonic bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <private-key|mnemonic>",
	Short: "Resolve the address behind a private key or mnemonic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectMnemonic {
			info, err := service().WalletFromMnemonic(args[0], "")
			if err != nil {
				return err
			}
			color.Green("Address:     %s", info.Address)
			fmt.Printf("Private key: %s\n", info.PrivateKey)
			return nil
		}

		address, err := service().AddressFromPrivateKey(args[0])
		if err != nil {
			return err
		}
		color.Green("Address: %s", address)
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectMnemonic, "mnemonic", false, "treat the argument as a recovery phrase")
	rootCmd.AddCommand(inspectCmd)
}
