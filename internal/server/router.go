package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wallet-gateway/internal/handler"
	"wallet-gateway/internal/handler/response"
	"wallet-gateway/pkg/monitor"
)

// NewHTTPRouter wires the operation surface onto a gin engine.
func NewHTTPRouter(walletHandler *handler.WalletHandler) *gin.Engine {
	// 1. Engine with default middleware (logger, recovery)
	r := gin.Default()

	// 2. Monitoring
	r.Use(monitor.PrometheusMiddleware())

	// 3. Base routes
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 4. API routes
	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		w := api.Group("/wallet")
		{
			w.POST("/balance", walletHandler.GetBalance)
			w.POST("/create", walletHandler.CreateWallet)
			w.POST("/address-from-key", walletHandler.AddressFromKey)
			w.POST("/from-mnemonic", walletHandler.FromMnemonic)
			w.POST("/transfer", walletHandler.Transfer)
			w.POST("/transaction", walletHandler.GetTransaction)
			w.POST("/encrypt-key", walletHandler.EncryptKey)
			w.POST("/decrypt-keystore", walletHandler.DecryptKeystore)
			w.POST("/token-info", walletHandler.TokenInfo)
			w.POST("/contract-send", walletHandler.ContractSend)
		}
	}

	return r
}
