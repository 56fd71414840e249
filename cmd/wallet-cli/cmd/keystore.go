package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "Encrypt and decrypt password-protected keystore files",
}

var keystoreEncryptCmd = &cobra.Command{
	Use:   "encrypt <private-key> <output-file>",
	Short: "Encrypt a private key into a keystore JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Keystore password: ")
		if err != nil {
			return err
		}

		blob, err := service().EncryptPrivateKey(args[0], password)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[1], []byte(blob), 0600); err != nil {
			return err
		}

		color.Green("Keystore written to %s", args[1])
		return nil
	},
}

var keystoreDecryptCmd = &cobra.Command{
	Use:   "decrypt <keystore-file>",
	Short: "Recover the wallet inside a keystore JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		password, err := readPassword("Keystore password: ")
		if err != nil {
			return err
		}

		info, err := service().WalletFromKeystore(string(blob), password)
		if err != nil {
			return err
		}

		color.Green("Address:     %s", info.Address)
		color.Yellow("Private key: %s", info.PrivateKey)
		return nil
	},
}

// readPassword prompts without echoing; passwords never travel via flags.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func init() {
	keystoreCmd.AddCommand(keystoreEncryptCmd)
	keystoreCmd.AddCommand(keystoreDecryptCmd)
	rootCmd.AddCommand(keystoreCmd)
}
