package gateway

import (
	"net/http"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// rateLimit counts requests per caller in a fixed window. Store errors let
// the request through.
func rateLimit(store domain.RateLimitStore, cfg config.GatewayRateLimitConfig, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := api.RateLimitKey(c)
		allowed, err := store.CheckRateLimit(c.Request.Context(), key, cfg.Requests, cfg.Window)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("rate limit check failed")
			c.Next()
			return
		}
		if !allowed {
			metrics.IncRateLimited("gateway")
			api.WriteError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
