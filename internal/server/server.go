package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/api"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/storage"
)

// Dependencies are the collaborators the HTTP server is built from. Redis and
// Blobs are optional.
type Dependencies struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Blobs    storage.BlobStore
	Services api.Services
}

// breakerState is implemented by blob stores behind a circuit breaker.
type breakerState interface {
	State() string
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the router: request id, logging, metrics and panic recovery on
// every route, the API under /api, plus /health and /metrics.
func New(cfg *config.Config, deps Dependencies) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
	)

	checks := map[string]api.HealthChecker{
		"database": func(ctx context.Context) error {
			return database.HealthCheck(ctx, deps.DB)
		},
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	if breaker, ok := deps.Blobs.(breakerState); ok {
		checks["blob_store"] = func(context.Context) error {
			if state := breaker.State(); state == "open" {
				return fmt.Errorf("circuit breaker %s", state)
			}
			return nil
		}
	}
	health := api.HealthCheck(checks)
	router.GET("/health", health)
	router.GET("/api/health", health)
	router.GET("/metrics", middleware.MetricsHandler())

	api.RegisterRoutes(router.Group("/api"), deps.Services)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
