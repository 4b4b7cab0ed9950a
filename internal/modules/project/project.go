package project

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/database"
	"github.com/portfolio-space/portfolio/internal/models"
	"github.com/portfolio-space/portfolio/internal/pkg/response"
	"go.uber.org/zap"
)

// Item is the public shape of a project.
type Item struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Technologies *string `json:"technologies"`
}

type listResponse struct {
	Projects []Item `json:"projects"`
}

type Service struct{ store *database.Store }

func NewService(store *database.Store) *Service { return &Service{store: store} }

// ListAll returns every project in storage order.
func (s *Service) ListAll(ctx context.Context) ([]Item, error) {
	conn, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	items := []Item{}
	err = conn.DB(ctx).Model(&models.Project{}).
		Select("id", "name", "description", "technologies").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler { return &Handler{svc: svc, log: log} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.list)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		if database.IsUnavailable(err) {
			h.log.Warn("projects: database unavailable", zap.Error(err))
			response.ServiceUnavailable(c, database.UnavailableMessage)
			return
		}
		h.log.Error("error fetching projects", zap.Error(err))
		response.InternalError(c, "Failed to fetch projects")
		return
	}
	if items == nil {
		items = []Item{}
	}
	response.OK(c, listResponse{Projects: items})
}
