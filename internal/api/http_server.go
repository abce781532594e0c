package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPServer is the backend REST API.
type HTTPServer struct {
	cfg    config.ServerConfig
	engine *gin.Engine
	server *http.Server
	logger *zerolog.Logger
}

func NewHTTPServer(cfg config.ServerConfig, handlers *Handlers, store Pinger, logger *zerolog.Logger) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(RequestID(), Recovery(logger), AccessLog("server", logger))

	RegisterHealth(engine, store)

	api := engine.Group("", rateLimit(newRateLimiter(cfg.RateLimit)))
	handlers.register(api)

	engine.NoRoute(func(c *gin.Context) {
		WriteError(c, http.StatusNotFound, "route not found")
	})

	srv := &HTTPServer{cfg: cfg, engine: engine, logger: logger}
	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// RegisterHealth adds /healthz and /readyz; readiness pings dep.
func RegisterHealth(r gin.IRouter, dep Pinger) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := dep.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
