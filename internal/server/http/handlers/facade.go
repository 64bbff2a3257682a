package handlers

import (
	"context"

	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// PaymentFacade describes the operations the webhook gateway needs from the core.
type PaymentFacade interface {
	VerifyWebhookSignature(raw []byte, signature string) bool
	ApplyPaymentOutcome(ctx context.Context, providerOrderID string, outcome model.PaymentOutcome) (*model.Order, error)
}

// Pinger reports storage connectivity for the health endpoint.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}
