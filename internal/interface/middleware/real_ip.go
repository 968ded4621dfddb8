package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client address under "real_ip". CF-Connecting-IP wins,
// then the left-most X-Forwarded-For entry, then gin's ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); ip != nil {
		return ip.String()
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
