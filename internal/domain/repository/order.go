package repository

import (
	"context"
	"time"

	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// TransitionStatus is the concurrency-control primitive of the payment
// lifecycle: it must update status only while the stored status is PENDING,
// within a single conditional statement.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByProviderOrderID(ctx context.Context, providerOrderID string) (*model.Order, error)
	// TransitionStatus reports applied=false when the order already carried
	// the target status and the call was a duplicate-delivery no-op.
	TransitionStatus(ctx context.Context, providerOrderID string, target model.OrderStatus) (order *model.Order, applied bool, err error)
	ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
}
