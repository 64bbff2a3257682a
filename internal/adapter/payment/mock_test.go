package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/pkg/signature"
)

func TestMockProviderCreateInvoice(t *testing.T) {
	provider := NewMockProvider(signature.NewCodec("secret"))

	inv, err := provider.CreateInvoice(context.Background(), "BASIC", 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ProviderOrderID != "MOCK-1000" {
		t.Fatalf("expected MOCK-1000, got %q", inv.ProviderOrderID)
	}
	if len(inv.QRPNG) == 0 {
		t.Fatal("expected QR image bytes")
	}
	// PNG magic bytes.
	if !strings.HasPrefix(string(inv.QRPNG[1:4]), "PNG") {
		t.Fatal("expected PNG payload")
	}
}

func TestMockProviderAssignsUniqueOrderIDs(t *testing.T) {
	provider := NewMockProvider(signature.NewCodec("secret"))
	seen := make(map[string]bool)

	for i := 0; i < 10; i++ {
		inv, err := provider.CreateInvoice(context.Background(), "PRO", 250000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[inv.ProviderOrderID] {
			t.Fatalf("duplicate provider order id %q", inv.ProviderOrderID)
		}
		seen[inv.ProviderOrderID] = true
	}
}

func TestMockProviderRejectsNonPositiveAmount(t *testing.T) {
	provider := NewMockProvider(signature.NewCodec("secret"))

	for _, amount := range []int64{0, -100} {
		if _, err := provider.CreateInvoice(context.Background(), "BASIC", amount); !errors.Is(err, domainErrors.ErrProviderRejected) {
			t.Fatalf("expected rejection for amount %d, got %v", amount, err)
		}
	}
}

func TestMockProviderFetchStatusAlwaysPending(t *testing.T) {
	provider := NewMockProvider(signature.NewCodec("secret"))

	status, err := provider.FetchStatus(context.Background(), "MOCK-1000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != InvoiceStatusPending {
		t.Fatalf("expected pending, got %s", status)
	}
}

func TestMockProviderVerifiesWebhookSignature(t *testing.T) {
	codec := signature.NewCodec("secret")
	provider := NewMockProvider(codec)
	body := []byte(`{"event":"paid","providerOrderId":"MOCK-1000"}`)

	if !provider.VerifyWebhookSignature(body, codec.Sign(body)) {
		t.Fatal("expected valid signature to verify")
	}
	if provider.VerifyWebhookSignature(body, "deadbeef") {
		t.Fatal("expected invalid signature to fail")
	}
}
