package proxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/portfolio/internal/pkg/response"
	"go.uber.org/zap"
)

// UnavailableMessage is returned whenever the backend cannot be used.
const UnavailableMessage = "Backend service unavailable"

// Upstream is the part of Client the handler depends on.
type Upstream interface {
	Forward(ctx context.Context, method, path string, body []byte) (int, json.RawMessage, error)
}

type Handler struct {
	up  Upstream
	log *zap.Logger
}

func NewHandler(up Upstream, log *zap.Logger) *Handler {
	return &Handler{up: up, log: log}
}

// RegisterRoutes mounts the proxied API under rg. Paths are forwarded as-is.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.forward)
	rg.GET("/skills", h.forward)
	rg.GET("/stats", h.forward)
	rg.POST("/contact", h.forward)
}

func (h *Handler) forward(c *gin.Context) {
	path := c.Request.URL.Path

	var body []byte
	if c.Request.Method != http.MethodGet {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			return
		}
		body = raw
	}

	status, payload, err := h.up.Forward(c.Request.Context(), c.Request.Method, path, body)
	if err != nil {
		h.log.Error("backend request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Error(err),
		)
		response.ServiceUnavailable(c, UnavailableMessage)
		return
	}
	response.Raw(c, status, payload)
}
