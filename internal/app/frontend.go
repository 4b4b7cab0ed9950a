package app

import (
	"errors"

	"github.com/portfolio-space/portfolio/internal/config"
	"github.com/portfolio-space/portfolio/internal/modules/health"
	"github.com/portfolio-space/portfolio/internal/modules/page"
	"github.com/portfolio-space/portfolio/internal/modules/proxy"
	"go.uber.org/zap"
)

// NewFrontend wires the page server and the API proxy in front of the backend.
func NewFrontend(logger *zap.Logger, cfg *config.FrontendConfig) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	router := newRouter("frontend", cfg.IsDev(), cfg.AllowedOrigins, logger)
	if err := page.Install(router); err != nil {
		return nil, err
	}
	router.GET("/health", health.Frontend)

	client := proxy.NewClient(cfg.BackendURL, cfg.UpstreamTimeout)
	proxy.NewHandler(client, logger).RegisterRoutes(router.Group("/api"))

	logger.Info("proxying api", zap.String("backend_url", cfg.BackendURL), zap.Duration("timeout", cfg.UpstreamTimeout))
	return &Server{addr: cfg.Addr(), router: router, logger: logger}, nil
}
