package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/pkg/response"
	"go.uber.org/zap"
)

// TimestampLayout renders local time with microseconds and no zone.
const TimestampLayout = "2006-01-02T15:04:05.000000"

const pingTimeout = 3 * time.Second

// Pinger checks store reachability. *database.Store satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the backend health payload.
type Status struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

type Handler struct {
	db  Pinger
	log *zap.Logger
	now func() time.Time
}

func NewHandler(db Pinger, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log, now: time.Now}
}

// RegisterRoutes mounts GET /health. It always answers 200; the store state is
// reported in the body.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.check)
}

func (h *Handler) check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	state := "connected"
	if err := h.db.Ping(ctx); err != nil {
		h.log.Debug("health: database ping failed", zap.Error(err))
		state = "disconnected"
	}
	response.OK(c, Status{
		Status:    "healthy",
		Service:   "backend",
		Database:  state,
		Timestamp: h.now().Format(TimestampLayout),
	})
}

// Frontend answers the frontend's health probe without checking the backend.
func Frontend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "frontend"})
}
