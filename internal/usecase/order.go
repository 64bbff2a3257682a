package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/tariffbot/internal/adapter/payment"
	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/domain/model"
	"github.com/polkiloo/tariffbot/internal/domain/repository"
	"github.com/polkiloo/tariffbot/internal/tariff"
)

// PaymentNotifier is told about orders that actually changed status, so the
// front end can message the order's chat. Duplicate webhook deliveries do not
// reach it.
type PaymentNotifier interface {
	NotifyPaymentOutcome(ctx context.Context, order *model.Order)
}

// OrderUseCase drives the order payment lifecycle: it creates orders against
// provider invoices and applies terminal payment outcomes.
type OrderUseCase struct {
	orders   repository.OrderRepository
	provider payment.Provider
	catalog  *tariff.Catalog
	logger   *slog.Logger
	notifier PaymentNotifier
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, provider payment.Provider, catalog *tariff.Catalog, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, provider: provider, catalog: catalog, logger: logger}
}

// SetNotifier binds the outcome notifier. Called once during wiring, before
// any traffic is served.
func (u *OrderUseCase) SetNotifier(n PaymentNotifier) {
	u.notifier = n
}

// Purchase issues a provider invoice for the tariff and persists a PENDING
// order bound to it. Nothing is written to the store until the provider call
// returns, so a timed-out invoice request leaves no half-created order.
func (u *OrderUseCase) Purchase(ctx context.Context, tgUserID, chatID, tariffCode string) (*model.Order, *model.Invoice, error) {
	t, ok := u.catalog.Get(tariffCode)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", domainErrors.ErrUnknownTariff, tariffCode)
	}

	invoice, err := u.provider.CreateInvoice(ctx, t.Code, t.AmountKopecks)
	if err != nil {
		return nil, nil, err
	}

	order, err := u.orders.Create(ctx, &model.Order{
		TgUserID:        tgUserID,
		ChatID:          chatID,
		TariffCode:      t.Code,
		AmountKopecks:   t.AmountKopecks,
		Provider:        u.provider.Name(),
		ProviderOrderID: invoice.ProviderOrderID,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrDuplicateProviderOrderID) {
			// A stale providerOrderId cannot be reused with a fresh insert;
			// the caller must retry the whole purchase for a fresh invoice.
			u.logger.Error("provider order id collision on create",
				slog.String("provider_order_id", invoice.ProviderOrderID))
			return nil, nil, fmt.Errorf("%w: provider order id %s already exists",
				domainErrors.ErrOrderCreationFailed, invoice.ProviderOrderID)
		}
		return nil, nil, err
	}

	u.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("provider_order_id", order.ProviderOrderID),
		slog.String("status", string(order.Status)),
	)
	return order, invoice, nil
}

// ApplyPaymentOutcome moves the order into the terminal status reported by
// the provider. Duplicate deliveries of the same outcome are no-ops; a
// conflicting terminal outcome surfaces as ErrInvalidTransition and is never
// retried, since re-delivery will not change what actually happened.
func (u *OrderUseCase) ApplyPaymentOutcome(ctx context.Context, providerOrderID string, outcome model.PaymentOutcome) (*model.Order, error) {
	order, applied, err := u.orders.TransitionStatus(ctx, providerOrderID, outcome.Status())
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidTransition) {
			u.logger.Error("terminal status conflict, manual reconciliation required",
				slog.String("provider_order_id", providerOrderID),
				slog.String("outcome", string(outcome)),
			)
		}
		return nil, err
	}
	if !applied {
		return order, nil
	}

	u.logger.Info("payment outcome applied",
		slog.String("order_id", order.ID),
		slog.String("provider_order_id", providerOrderID),
		slog.String("status", string(order.Status)),
	)
	if u.notifier != nil {
		u.notifier.NotifyPaymentOutcome(ctx, order)
	}
	return order, nil
}

// StalePending lists orders that have been waiting for an outcome too long.
func (u *OrderUseCase) StalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.ListStalePending(ctx, olderThan, limit)
}
