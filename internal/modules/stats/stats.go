package stats

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/database"
	"github.com/portfolio-space/portfolio/internal/models"
	"github.com/portfolio-space/portfolio/internal/pkg/response"
	"go.uber.org/zap"
)

// Fixed figures reported alongside the live counts.
const (
	ExperienceYears = 5
	Certifications  = 3
)

// Stats is the summary served at /api/stats.
type Stats struct {
	ProjectsCount   int64 `json:"projects_count"`
	SkillsCount     int64 `json:"skills_count"`
	ExperienceYears int   `json:"experience_years"`
	Certifications  int   `json:"certifications"`
}

type Service struct{ store *database.Store }

func NewService(store *database.Store) *Service { return &Service{store: store} }

// Get counts projects and skills on a single connection.
func (s *Service) Get(ctx context.Context) (*Stats, error) {
	conn, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	out := &Stats{ExperienceYears: ExperienceYears, Certifications: Certifications}
	if err := conn.DB(ctx).Model(&models.Project{}).Count(&out.ProjectsCount).Error; err != nil {
		return nil, err
	}
	if err := conn.DB(ctx).Model(&models.Skill{}).Count(&out.SkillsCount).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler { return &Handler{svc: svc, log: log} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.get)
}

func (h *Handler) get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context())
	if err != nil {
		if database.IsUnavailable(err) {
			h.log.Warn("stats: database unavailable", zap.Error(err))
			response.ServiceUnavailable(c, database.UnavailableMessage)
			return
		}
		h.log.Error("error fetching stats", zap.Error(err))
		response.InternalError(c, "Failed to fetch statistics")
		return
	}
	response.OK(c, out)
}
