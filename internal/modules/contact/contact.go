package contact

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/database"
	"github.com/portfolio-space/portfolio/internal/models"
	"github.com/portfolio-space/portfolio/internal/pkg/response"
	"go.uber.org/zap"
)

// EventChannel is the pub/sub channel contact events are published on.
const EventChannel = "portfolio:contacts"

const publishTimeout = 2 * time.Second

// Publisher delivers contact events. *redis.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// SubmitDTO is the contact form body. Pointers let empty strings through while
// still rejecting missing or null keys.
type SubmitDTO struct {
	Name    *string `json:"name" binding:"required"`
	Email   *string `json:"email" binding:"required"`
	Message *string `json:"message" binding:"required"`
}

// Event is published after a contact row is committed.
type Event struct {
	Type      string    `json:"type"`
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct{ store *database.Store }

func NewService(store *database.Store) *Service { return &Service{store: store} }

// Submit stores one contact row and returns it with its assigned id.
func (s *Service) Submit(ctx context.Context, dto SubmitDTO) (*models.Contact, error) {
	conn, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	row := &models.Contact{Name: *dto.Name, Email: *dto.Email, Message: dto.Message}
	// Written explicitly: MySQL cannot return the column default after insert.
	row.CreatedAt = time.Now()
	if err := conn.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

type Handler struct {
	svc *Service
	pub Publisher
	log *zap.Logger
}

// NewHandler builds the contact handler. pub may be nil, which disables events.
func NewHandler(svc *Service, pub Publisher, log *zap.Logger) *Handler {
	return &Handler{svc: svc, pub: pub, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	row, err := h.svc.Submit(c.Request.Context(), dto)
	if err != nil {
		if database.IsUnavailable(err) {
			h.log.Warn("contact: database unavailable", zap.Error(err))
			response.ServiceUnavailable(c, database.UnavailableMessage)
			return
		}
		h.log.Error("error saving contact", zap.Error(err))
		response.InternalError(c, "Failed to save contact")
		return
	}

	h.log.Info("contact form submitted", zap.String("email", row.Email))
	h.publish(c.Request.Context(), row)
	response.Created(c, gin.H{"message": "Contact form submitted successfully"})
}

func (h *Handler) publish(ctx context.Context, row *models.Contact) {
	if h.pub == nil {
		return
	}
	payload, err := json.Marshal(Event{
		Type:      "contact.created",
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	})
	if err != nil {
		h.log.Warn("contact event encode failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := h.pub.Publish(ctx, EventChannel, payload); err != nil {
		h.log.Warn("contact event publish failed", zap.Int("id", row.ID), zap.Error(err))
	}
}
