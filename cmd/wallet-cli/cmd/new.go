package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var newDerivationPath string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new wallet",
	Long:  `Generates fresh entropy, derives an account at the given BIP-44 path and prints the recovery phrase.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := service().CreateWallet(newDerivationPath)
		if err != nil {
			return err
		}

		color.Green("Address:     %s", info.Address)
		color.Yellow("Private key: %s", info.PrivateKey)
		color.Cyan("Mnemonic:    %s", info.Mnemonic)
		color.Red("Anyone holding the mnemonic controls every asset of this wallet. Store it offline.")
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newDerivationPath, "path", "", "derivation path (default m/44'/60'/0'/0/0)")
	rootCmd.AddCommand(newCmd)
}
