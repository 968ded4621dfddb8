package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP lets loopback and private-range clients bypass a limiter.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}
