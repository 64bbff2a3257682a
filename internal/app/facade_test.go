package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/tariffbot/internal/adapter/payment"
	"github.com/polkiloo/tariffbot/internal/domain/model"
	"github.com/polkiloo/tariffbot/internal/pkg/signature"
	"github.com/polkiloo/tariffbot/internal/tariff"
	testhelpers "github.com/polkiloo/tariffbot/internal/test"
	"github.com/polkiloo/tariffbot/internal/usecase"
	"github.com/polkiloo/tariffbot/internal/worker"
)

func newTestFacade(repo *testhelpers.OrderRepositoryStub) (*PaymentFacade, *signature.Codec) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	codec := signature.NewCodec("secret")
	provider := payment.NewMockProvider(codec)
	catalog := tariff.Default()
	orders := usecase.NewOrderUseCase(repo, provider, catalog, logger)
	return NewPaymentFacade(orders, provider, catalog), codec
}

func TestFacadeTariffs(t *testing.T) {
	facade, _ := newTestFacade(testhelpers.NewOrderRepositoryStub())
	tariffs := facade.Tariffs()
	if len(tariffs) != 2 {
		t.Fatalf("expected two tariffs, got %d", len(tariffs))
	}
}

func TestFacadePurchaseAndOutcome(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	facade, _ := newTestFacade(repo)

	order, invoice, err := facade.Purchase(context.Background(), "42", "42", "BASIC")
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if len(invoice.QRPNG) == 0 {
		t.Fatal("expected QR payload")
	}

	updated, err := facade.ApplyPaymentOutcome(context.Background(), order.ProviderOrderID, model.PaymentOutcomePaid)
	if err != nil {
		t.Fatalf("apply outcome failed: %v", err)
	}
	if updated.Status != model.OrderStatusPaid {
		t.Fatalf("expected paid order, got %s", updated.Status)
	}
}

func TestFacadeVerifyWebhookSignature(t *testing.T) {
	facade, codec := newTestFacade(testhelpers.NewOrderRepositoryStub())
	body := []byte(`{"event":"paid","providerOrderId":"MOCK-1000"}`)
	if !facade.VerifyWebhookSignature(body, codec.Sign(body)) {
		t.Fatal("expected valid signature to verify")
	}
	if facade.VerifyWebhookSignature(body, "ffff") {
		t.Fatal("expected wrong signature to fail")
	}
}

func TestFacadeCheckInvoice(t *testing.T) {
	facade, _ := newTestFacade(testhelpers.NewOrderRepositoryStub())
	status, err := facade.CheckInvoice(context.Background(), "MOCK-1000")
	if err != nil {
		t.Fatalf("check invoice failed: %v", err)
	}
	if status != payment.InvoiceStatusPending {
		t.Fatalf("expected pending status, got %s", status)
	}
}

var _ worker.PaymentFacade = (*PaymentFacade)(nil)
