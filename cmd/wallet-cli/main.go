package main

import "wallet-gateway/cmd/wallet-cli/cmd"

func main() {
	cmd.Execute()
}
