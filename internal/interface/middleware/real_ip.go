package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client address under "real_ip".
// With trustProxy set, CF-Connecting-IP and then the left-most
// X-Forwarded-For entry win over the socket address; otherwise those
// headers are ignored, since any client can forge them.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", resolveIP(c, trustProxy))
		c.Next()
	}
}

func resolveIP(c *gin.Context, trustProxy bool) string {
	if trustProxy {
		if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); ip != nil {
			return ip.String()
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
	}
	if host, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr)); err == nil {
		return host
	}
	return c.ClientIP()
}
