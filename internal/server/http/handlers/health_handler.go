package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/tariffbot/internal/server/http/dto"
)

// HealthHandler reports process and storage health.
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Handle processes GET /healthz.
func (h *HealthHandler) Handle(c *gin.Context) {
	if err := h.pinger.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.WebhookResponse{Error: "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.WebhookResponse{OK: true})
}
