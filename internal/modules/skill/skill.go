package skill

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/database"
	"github.com/portfolio-space/portfolio/internal/models"
	"github.com/portfolio-space/portfolio/internal/pkg/response"
	"go.uber.org/zap"
)

type listResponse struct {
	Skills []string `json:"skills"`
}

type Service struct{ store *database.Store }

func NewService(store *database.Store) *Service { return &Service{store: store} }

// Names returns skill names ordered by category, then name.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	conn, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	names := []string{}
	err = conn.DB(ctx).Model(&models.Skill{}).
		Order("category, name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler { return &Handler{svc: svc, log: log} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/skills", h.list)
}

func (h *Handler) list(c *gin.Context) {
	names, err := h.svc.Names(c.Request.Context())
	if err != nil {
		if database.IsUnavailable(err) {
			h.log.Warn("skills: database unavailable", zap.Error(err))
			response.ServiceUnavailable(c, database.UnavailableMessage)
			return
		}
		h.log.Error("error fetching skills", zap.Error(err))
		response.InternalError(c, "Failed to fetch skills")
		return
	}
	if names == nil {
		names = []string{}
	}
	response.OK(c, listResponse{Skills: names})
}
