package app

import (
	"context"
	"time"

	"github.com/polkiloo/tariffbot/internal/adapter/payment"
	"github.com/polkiloo/tariffbot/internal/domain/model"
	"github.com/polkiloo/tariffbot/internal/tariff"
	"github.com/polkiloo/tariffbot/internal/usecase"
)

// PaymentFacade aggregates the operations exposed to the chat front end,
// the webhook gateway, and the reconciliation worker.
type PaymentFacade struct {
	orders   *usecase.OrderUseCase
	provider payment.Provider
	catalog  *tariff.Catalog
}

// NewPaymentFacade constructs PaymentFacade.
func NewPaymentFacade(orders *usecase.OrderUseCase, provider payment.Provider, catalog *tariff.Catalog) *PaymentFacade {
	return &PaymentFacade{orders: orders, provider: provider, catalog: catalog}
}

// Tariffs returns the purchasable catalog.
func (f *PaymentFacade) Tariffs() []model.Tariff {
	return f.catalog.All()
}

// Purchase creates an order with a provider invoice to pay against.
func (f *PaymentFacade) Purchase(ctx context.Context, tgUserID, chatID, tariffCode string) (*model.Order, *model.Invoice, error) {
	return f.orders.Purchase(ctx, tgUserID, chatID, tariffCode)
}

// ApplyPaymentOutcome applies a terminal payment result to the order.
func (f *PaymentFacade) ApplyPaymentOutcome(ctx context.Context, providerOrderID string, outcome model.PaymentOutcome) (*model.Order, error) {
	return f.orders.ApplyPaymentOutcome(ctx, providerOrderID, outcome)
}

// VerifyWebhookSignature authenticates an inbound provider callback.
func (f *PaymentFacade) VerifyWebhookSignature(raw []byte, sig string) bool {
	return f.provider.VerifyWebhookSignature(raw, sig)
}

// StalePendingOrders lists orders awaiting an outcome for too long.
func (f *PaymentFacade) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return f.orders.StalePending(ctx, olderThan, limit)
}

// CheckInvoice queries the provider for the current invoice status.
func (f *PaymentFacade) CheckInvoice(ctx context.Context, providerOrderID string) (payment.InvoiceStatus, error) {
	return f.provider.FetchStatus(ctx, providerOrderID)
}
