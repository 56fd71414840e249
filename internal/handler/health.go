package handler

import (
	"github.com/gin-gonic/gin"

	"wallet-gateway/internal/handler/response"
)

// HealthCheck reports liveness; the gateway holds no state to probe beyond
// the process itself.
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"service": "wallet-gateway",
	})
}
