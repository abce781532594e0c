package gateway

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server is the public gateway in front of the backend.
type Server struct {
	cfg    config.GatewayConfig
	engine *gin.Engine
	server *http.Server
	logger *zerolog.Logger
}

// NewServer wires middleware and routes. limiter may be nil when rate
// limiting is disabled.
func NewServer(cfg config.GatewayConfig, backend Backend, limiter domain.RateLimitStore, logger *zerolog.Logger) (*Server, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(api.RequestID(), api.Recovery(logger), api.AccessLog("gateway", logger))
	if len(cfg.CORS.AllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig(cfg.CORS)))
	}

	api.RegisterHealth(engine, backend)

	routes := engine.Group("")
	if cfg.RateLimit.Enabled && limiter != nil {
		routes.Use(rateLimit(limiter, cfg.RateLimit, logger))
	}
	NewProxy(backend, logger).register(routes)

	engine.NoRoute(func(c *gin.Context) {
		api.WriteError(c, http.StatusNotFound, "route not found")
	})

	srv := &Server{cfg: cfg, engine: engine, logger: logger}
	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Timeout + 5*time.Second,
	}
	return srv, nil
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", models.UserIDHeader, api.RequestIDHeader},
		ExposeHeaders: []string{api.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(cfg.AllowedOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
	}
	return cc
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Str("backend", s.cfg.BackendURL).Msg("Gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
