package app

import (
	"context"
	"errors"
	"time"

	"github.com/portfolio-space/portfolio/internal/config"
	"github.com/portfolio-space/portfolio/internal/database"
	"github.com/portfolio-space/portfolio/internal/modules/contact"
	"github.com/portfolio-space/portfolio/internal/modules/health"
	"github.com/portfolio-space/portfolio/internal/modules/project"
	"github.com/portfolio-space/portfolio/internal/modules/skill"
	"github.com/portfolio-space/portfolio/internal/modules/stats"
	pkgredis "github.com/portfolio-space/portfolio/internal/pkg/redis"
	"go.uber.org/zap"
)

const initTimeout = 15 * time.Second

// NewBackend wires the data API: store, optional event publisher, routes.
// An unreachable store does not fail startup; requests report 503 until it
// comes back.
func NewBackend(logger *zap.Logger, cfg *config.BackendConfig) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	store, err := database.Open(cfg.Database, cfg.IsDev(), logger)
	if err != nil {
		return nil, err
	}
	initStore(logger, store)

	var pub contact.Publisher
	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, contact events disabled", zap.Error(err))
		} else {
			pub = rc
		}
	}

	srv := buildBackend(logger, cfg, store, pub)
	srv.onShutdown(store.Close)
	if rc != nil {
		srv.onShutdown(rc.Close)
	}
	return srv, nil
}

func initStore(logger *zap.Logger, store *database.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	res, err := store.Init(ctx)
	if err != nil {
		logger.Warn("database initialization failed, serving in degraded mode", zap.Error(err))
		return
	}
	logger.Info("database initialized",
		zap.Int("projects_seeded", res.Projects),
		zap.Int("skills_seeded", res.Skills),
	)
}

func buildBackend(logger *zap.Logger, cfg *config.BackendConfig, store *database.Store, pub contact.Publisher) *Server {
	router := newRouter("backend", cfg.IsDev(), cfg.AllowedOrigins, logger)

	health.NewHandler(store, logger).RegisterRoutes(router)

	api := router.Group("/api")
	project.NewHandler(project.NewService(store), logger).RegisterRoutes(api)
	skill.NewHandler(skill.NewService(store), logger).RegisterRoutes(api)
	contact.NewHandler(contact.NewService(store), pub, logger).RegisterRoutes(api)
	stats.NewHandler(stats.NewService(store), logger).RegisterRoutes(api)

	return &Server{addr: cfg.Addr(), router: router, logger: logger}
}
