package test

import (
	"context"
	"time"

	"github.com/polkiloo/tariffbot/internal/adapter/payment"
	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// WebhookFacadeStub provides controllable behaviour for the webhook handler.
type WebhookFacadeStub struct {
	VerifyFn func([]byte, string) bool
	ApplyFn  func(context.Context, string, model.PaymentOutcome) (*model.Order, error)

	Applied []OutcomeCall
}

// OutcomeCall records an ApplyPaymentOutcome invocation.
type OutcomeCall struct {
	ProviderOrderID string
	Outcome         model.PaymentOutcome
}

// VerifyWebhookSignature delegates to the override or accepts everything.
func (s *WebhookFacadeStub) VerifyWebhookSignature(raw []byte, sig string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(raw, sig)
	}
	return true
}

// ApplyPaymentOutcome records the call and delegates or succeeds.
func (s *WebhookFacadeStub) ApplyPaymentOutcome(ctx context.Context, providerOrderID string, outcome model.PaymentOutcome) (*model.Order, error) {
	s.Applied = append(s.Applied, OutcomeCall{ProviderOrderID: providerOrderID, Outcome: outcome})
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, providerOrderID, outcome)
	}
	return &model.Order{ProviderOrderID: providerOrderID, Status: outcome.Status()}, nil
}

// ReconcilerFacadeStub simulates the application facade for the worker.
type ReconcilerFacadeStub struct {
	StaleFn func(context.Context, time.Duration, int) ([]model.Order, error)
	CheckFn func(context.Context, string) (payment.InvoiceStatus, error)
	ApplyFn func(context.Context, string, model.PaymentOutcome) (*model.Order, error)

	Applied []OutcomeCall
}

// StalePendingOrders delegates to the override or returns nothing.
func (s *ReconcilerFacadeStub) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, olderThan, limit)
	}
	return nil, nil
}

// CheckInvoice delegates to the override or reports pending.
func (s *ReconcilerFacadeStub) CheckInvoice(ctx context.Context, providerOrderID string) (payment.InvoiceStatus, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, providerOrderID)
	}
	return payment.InvoiceStatusPending, nil
}

// ApplyPaymentOutcome records the call and delegates or succeeds.
func (s *ReconcilerFacadeStub) ApplyPaymentOutcome(ctx context.Context, providerOrderID string, outcome model.PaymentOutcome) (*model.Order, error) {
	s.Applied = append(s.Applied, OutcomeCall{ProviderOrderID: providerOrderID, Outcome: outcome})
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, providerOrderID, outcome)
	}
	return &model.Order{ProviderOrderID: providerOrderID, Status: outcome.Status()}, nil
}

// PurchaseFacadeStub simulates the purchase surface consumed by the chat bot.
type PurchaseFacadeStub struct {
	TariffsFn  func() []model.Tariff
	PurchaseFn func(context.Context, string, string, string) (*model.Order, *model.Invoice, error)
}

// Tariffs delegates to the override or returns a single tariff.
func (s *PurchaseFacadeStub) Tariffs() []model.Tariff {
	if s.TariffsFn != nil {
		return s.TariffsFn()
	}
	return []model.Tariff{{Code: "BASIC", Title: "Тариф Базовый", AmountKopecks: 100000}}
}

// Purchase delegates to the override or returns a pending order.
func (s *PurchaseFacadeStub) Purchase(ctx context.Context, tgUserID, chatID, tariffCode string) (*model.Order, *model.Invoice, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, tgUserID, chatID, tariffCode)
	}
	return &model.Order{
			TgUserID:        tgUserID,
			ChatID:          chatID,
			TariffCode:      tariffCode,
			Status:          model.OrderStatusPending,
			ProviderOrderID: "MOCK-1000",
		}, &model.Invoice{ProviderOrderID: "MOCK-1000", QRPNG: []byte{0x89, 'P', 'N', 'G'}},
		nil
}
