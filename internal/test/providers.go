package test

import (
	"context"
	"fmt"

	"github.com/polkiloo/tariffbot/internal/adapter/payment"
	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// ProviderStub implements payment.Provider with controllable behaviour.
type ProviderStub struct {
	ProviderName    string
	CreateInvoiceFn func(context.Context, string, int64) (*model.Invoice, error)
	FetchStatusFn   func(context.Context, string) (payment.InvoiceStatus, error)
	VerifyFn        func([]byte, string) bool

	Issued int
}

// Name returns configured provider name or "mock".
func (s *ProviderStub) Name() string {
	if s.ProviderName != "" {
		return s.ProviderName
	}
	return "mock"
}

// CreateInvoice returns deterministic MOCK invoices unless overridden.
func (s *ProviderStub) CreateInvoice(ctx context.Context, tariffCode string, amountKopecks int64) (*model.Invoice, error) {
	if s.CreateInvoiceFn != nil {
		return s.CreateInvoiceFn(ctx, tariffCode, amountKopecks)
	}
	s.Issued++
	return &model.Invoice{
		ProviderOrderID: fmt.Sprintf("MOCK-%d", 999+s.Issued),
		QRPNG:           []byte{0x89, 'P', 'N', 'G'},
	}, nil
}

// FetchStatus reports pending unless overridden.
func (s *ProviderStub) FetchStatus(ctx context.Context, providerOrderID string) (payment.InvoiceStatus, error) {
	if s.FetchStatusFn != nil {
		return s.FetchStatusFn(ctx, providerOrderID)
	}
	return payment.InvoiceStatusPending, nil
}

// VerifyWebhookSignature accepts everything unless overridden.
func (s *ProviderStub) VerifyWebhookSignature(raw []byte, sig string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(raw, sig)
	}
	return true
}
