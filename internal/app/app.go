package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/middleware"
	"github.com/portfolio-space/portfolio/internal/pkg/response"
	"go.uber.org/zap"
)

// Server is one wired HTTP service: its router plus the resources it owns.
type Server struct {
	addr    string
	router  *gin.Engine
	logger  *zap.Logger
	closers []func() error
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// Shutdown releases owned resources in reverse acquisition order.
func (s *Server) Shutdown() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Server) onShutdown(fn func() error) { s.closers = append(s.closers, fn) }

// newRouter builds the middleware chain shared by both services.
func newRouter(service string, dev bool, origins []string, logger *zap.Logger) *gin.Engine {
	if dev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := middleware.NewHTTPMetrics(service)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Middleware())
	router.Use(corsMiddleware(origins, dev))

	router.NoRoute(response.NotFound)
	router.NoMethod(response.MethodNotAllowed)
	router.GET("/metrics", metrics.Handler())
	return router
}
