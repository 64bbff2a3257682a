package payment

import (
	"context"
	"fmt"
	"sync/atomic"

	qrcode "github.com/skip2/go-qrcode"

	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/domain/model"
	"github.com/polkiloo/tariffbot/internal/pkg/signature"
)

// MockProvider imitates an SBP-style gateway: it assigns MOCK-prefixed order
// identifiers and renders the payment QR locally. Invoices it issues are never
// payable, the reconciler sees them as forever pending.
type MockProvider struct {
	codec *signature.Codec
	seq   atomic.Int64
}

// NewMockProvider builds mock provider sharing the webhook secret codec.
func NewMockProvider(codec *signature.Codec) *MockProvider {
	p := &MockProvider{codec: codec}
	p.seq.Store(999)
	return p
}

func (p *MockProvider) Name() string {
	return "mock"
}

// CreateInvoice assigns a unique provider order id and renders its QR.
func (p *MockProvider) CreateInvoice(_ context.Context, tariffCode string, amountKopecks int64) (*model.Invoice, error) {
	if amountKopecks <= 0 {
		return nil, fmt.Errorf("%w: non-positive amount %d", domainErrors.ErrProviderRejected, amountKopecks)
	}

	providerOrderID := fmt.Sprintf("MOCK-%d", p.seq.Add(1))
	payload := fmt.Sprintf("SBP|ORDER=%s|TARIFF=%s|AMOUNT=%d|NOTE=DEMO", providerOrderID, tariffCode, amountKopecks)

	png, err := qrcode.Encode(payload, qrcode.Medium, 512)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	return &model.Invoice{ProviderOrderID: providerOrderID, QRPNG: png}, nil
}

func (p *MockProvider) FetchStatus(context.Context, string) (InvoiceStatus, error) {
	return InvoiceStatusPending, nil
}

func (p *MockProvider) VerifyWebhookSignature(raw []byte, sig string) bool {
	return p.codec.Verify(raw, sig)
}
