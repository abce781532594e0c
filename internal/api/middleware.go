package api

import (
	"net/http"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID propagates or assigns an X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id assigned by RequestID.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog logs one line per request and records it in metrics under service.
func AccessLog(service string, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		status := c.Writer.Status()
		metrics.ObserveHTTP(service, c.FullPath(), status, dur.Seconds())

		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", dur).
			Str("request_id", c.GetString(requestIDKey)).
			Str("user_id", c.GetHeader(models.UserIDHeader)).
			Msg("http request")
	}
}

// Recovery turns panics into a logged 500 with the generic error body.
func Recovery(logger *zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("panic recovered")
		WriteError(c, http.StatusInternalServerError, InternalErrorMessage)
	})
}

// RateLimitKey is the caller id when present, otherwise the client address.
func RateLimitKey(c *gin.Context) string {
	if id := c.GetHeader(models.UserIDHeader); id != "" {
		return "user:" + id
	}
	return "ip:" + c.ClientIP()
}

func rateLimit(l *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(RateLimitKey(c)) {
			metrics.IncRateLimited("server")
			WriteError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
