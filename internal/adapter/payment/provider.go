package payment

import (
	"context"

	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// InvoiceStatus mirrors provider-side invoice state.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusFailed  InvoiceStatus = "failed"
)

// Provider issues invoices and authenticates provider callbacks.
// Implementations are interchangeable: the mock and any real gateway
// expose the same capability set and are selected by configuration.
type Provider interface {
	Name() string
	CreateInvoice(ctx context.Context, tariffCode string, amountKopecks int64) (*model.Invoice, error)
	FetchStatus(ctx context.Context, providerOrderID string) (InvoiceStatus, error)
	VerifyWebhookSignature(raw []byte, signature string) bool
}
