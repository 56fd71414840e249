package main

import (
	"wallet-gateway/internal/handler"
	"wallet-gateway/internal/server"
	walletservice "wallet-gateway/internal/service/wallet"
	"wallet-gateway/pkg/config"
	"wallet-gateway/pkg/logger"
	"wallet-gateway/pkg/monitor"
	"wallet-gateway/pkg/token"
)

func main() {
	// 1. Configuration
	config.Init()

	// 2. Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 3. Metrics
	monitor.Init()

	// 4. Core wallet service; the default ABI and derivation path are
	// injected here, not read from globals inside the core.
	svc := walletservice.New(walletservice.Config{
		DefaultABI:          token.MustStandardABI(),
		DerivationPath:      config.Global.Wallet.DerivationPath,
		DefaultGasPriceGwei: config.Global.Wallet.DefaultGasPriceGwei,
	})

	// 5. HTTP surface
	walletHandler := handler.NewWalletHandler(svc, config.Global.Wallet.RpcUrl)
	router := server.NewHTTPRouter(walletHandler)

	// 6. Run until shutdown signal
	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, router)
	app.Run()
}
