package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/domain/model"
	"github.com/polkiloo/tariffbot/internal/server/http/dto"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Provider-Signature"

// WebhookHandler turns authenticated provider callbacks into lifecycle transitions.
type WebhookHandler struct {
	facade PaymentFacade
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade PaymentFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Handle processes POST /provider/webhook. The signature is verified over the
// exact bytes received, before the body is parsed at all.
func (h *WebhookHandler) Handle(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookResponse{Error: "read body"})
		return
	}

	if !h.facade.VerifyWebhookSignature(raw, c.GetHeader(SignatureHeader)) {
		h.logger.Warn("webhook signature mismatch")
		c.JSON(http.StatusUnauthorized, dto.WebhookResponse{})
		return
	}

	var req dto.WebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookResponse{Error: "malformed payload"})
		return
	}
	if req.ProviderOrderID == "" {
		c.JSON(http.StatusBadRequest, dto.WebhookResponse{Error: "providerOrderId is required"})
		return
	}

	var outcome model.PaymentOutcome
	switch req.Event {
	case "paid":
		outcome = model.PaymentOutcomePaid
	case "failed":
		outcome = model.PaymentOutcomeFailed
	default:
		// Unknown event types are acknowledged so the provider can roll out
		// new events without breaking us.
		h.logger.Info("unhandled provider event",
			slog.String("event", req.Event),
			slog.String("provider_order_id", req.ProviderOrderID))
		c.JSON(http.StatusOK, dto.WebhookResponse{OK: true})
		return
	}

	if _, err := h.facade.ApplyPaymentOutcome(c.Request.Context(), req.ProviderOrderID, outcome); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrOrderNotFound):
			// The order may simply not exist yet if deliveries raced order
			// creation; the provider retries for a bounded window.
			h.logger.Warn("webhook for unknown order",
				slog.String("provider_order_id", req.ProviderOrderID))
			c.JSON(http.StatusNotFound, dto.WebhookResponse{Error: "order not found"})
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, dto.WebhookResponse{Error: "status conflict"})
		default:
			h.logger.Error("webhook processing failed",
				slog.String("provider_order_id", req.ProviderOrderID),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.WebhookResponse{})
		}
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{OK: true})
}
