package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet-gateway/pkg/errno"
)

// Success writes the uniform success envelope: {"success": true} merged with
// the operation's payload fields.
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error decodes the error taxonomy into a stable code and relays the
// underlying message as-is; it often already carries the chain node's
// human-readable reason.
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"code":    code,
		"msg":     msg,
	})
}
