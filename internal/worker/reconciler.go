package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/tariffbot/internal/adapter/payment"
	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the reconciler.
type PaymentFacade interface {
	StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
	CheckInvoice(ctx context.Context, providerOrderID string) (payment.InvoiceStatus, error)
	ApplyPaymentOutcome(ctx context.Context, providerOrderID string, outcome model.PaymentOutcome) (*model.Order, error)
}

// Reconciler is a safety net for lost webhooks: it periodically re-checks
// orders stuck in PENDING against the provider and applies terminal outcomes
// through the same idempotent transition the webhook path uses.
type Reconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	pendingGrace time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs reconciliation worker pool.
func NewReconciler(facade PaymentFacade, pollInterval, pendingGrace time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		pendingGrace: pendingGrace,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.StalePendingOrders(ctx, r.pendingGrace, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleOrder(ctx, order)
		}
	}
}

func (r *Reconciler) handleOrder(ctx context.Context, order model.Order) {
	status, err := r.facade.CheckInvoice(ctx, order.ProviderOrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrProviderUnavailable) {
			r.logger.Warn("provider unavailable, will retry next poll",
				slog.String("provider_order_id", order.ProviderOrderID))
			return
		}
		r.logger.Error("invoice status check failed",
			slog.String("provider_order_id", order.ProviderOrderID),
			slog.String("error", err.Error()))
		return
	}

	var outcome model.PaymentOutcome
	switch status {
	case payment.InvoiceStatusPaid:
		outcome = model.PaymentOutcomePaid
	case payment.InvoiceStatusFailed:
		outcome = model.PaymentOutcomeFailed
	default:
		// Still pending, nothing to reconcile.
		return
	}

	if _, err := r.facade.ApplyPaymentOutcome(ctx, order.ProviderOrderID, outcome); err != nil {
		if errors.Is(err, domainErrors.ErrInvalidTransition) {
			r.logger.Error("reconcile hit terminal status conflict",
				slog.String("provider_order_id", order.ProviderOrderID),
				slog.String("outcome", string(outcome)))
			return
		}
		r.logger.Error("apply reconciled outcome failed",
			slog.String("provider_order_id", order.ProviderOrderID),
			slog.String("error", err.Error()))
	}
}
