package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// resolveClientIP prefers the Cloudflare header, then the left-most
// X-Forwarded-For hop, then gin's own resolution. Unparseable values
// are skipped, never trusted.
func resolveClientIP(c *gin.Context) string {
	if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
		if ip := net.ParseIP(cf); ip != nil {
			return ip.String()
		}
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}

// RealIP stores the resolved client IP under "real_ip" for the rate
// limiter and access logs.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", resolveClientIP(c))
		c.Next()
	}
}
