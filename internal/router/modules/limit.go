package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-todo/internal/container"
	"github.com/oksasatya/go-ddd-todo/internal/interface/middleware"
)

// Limit is a per-minute redis limiter honoring RATE_LIMIT_BYPASS_PRIVATE.
func Limit(perMinute int, key middleware.KeyFunc) gin.HandlerFunc {
	var allow middleware.AllowFunc
	if cfg := container.GetConfig(); cfg != nil && cfg.RateLimitBypassPrivate {
		allow = middleware.AllowPrivateIP()
	}
	return middleware.RateLimit(container.GetRedis(), perMinute, time.Minute, key, allow)
}
