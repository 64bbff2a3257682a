package test

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/domain/model"
)

// OrderRepositoryStub allows tests to customize repository behaviour. With no
// overrides it acts as a small in-memory store keyed by provider order id.
type OrderRepositoryStub struct {
	CreateFn           func(context.Context, *model.Order) (*model.Order, error)
	GetFn              func(context.Context, string) (*model.Order, error)
	TransitionFn       func(context.Context, string, model.OrderStatus) (*model.Order, bool, error)
	ListStalePendingFn func(context.Context, time.Duration, int) ([]model.Order, error)

	Orders      map[string]*model.Order
	Created     []model.Order
	Transitions []TransitionCall
}

// TransitionCall records a TransitionStatus invocation.
type TransitionCall struct {
	ProviderOrderID string
	Target          model.OrderStatus
}

// NewOrderRepositoryStub constructs stub with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Create stores the order as PENDING unless overridden.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if _, exists := s.Orders[order.ProviderOrderID]; exists {
		return nil, domainErrors.ErrDuplicateProviderOrderID
	}
	created := *order
	created.ID = "order-" + order.ProviderOrderID
	created.Status = model.OrderStatusPending
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.Orders[order.ProviderOrderID] = &created
	s.Created = append(s.Created, created)
	return &created, nil
}

// GetByProviderOrderID fetches a stored order or returns not found.
func (s *OrderRepositoryStub) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, providerOrderID)
	}
	if order, ok := s.Orders[providerOrderID]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrOrderNotFound
}

// TransitionStatus mimics the conditional update semantics of the real store.
func (s *OrderRepositoryStub) TransitionStatus(ctx context.Context, providerOrderID string, target model.OrderStatus) (*model.Order, bool, error) {
	s.Transitions = append(s.Transitions, TransitionCall{ProviderOrderID: providerOrderID, Target: target})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, providerOrderID, target)
	}
	order, ok := s.Orders[providerOrderID]
	if !ok {
		return nil, false, domainErrors.ErrOrderNotFound
	}
	if order.Status == target {
		return order, false, nil
	}
	if order.Status.Terminal() {
		return nil, false, domainErrors.ErrInvalidTransition
	}
	order.Status = target
	order.UpdatedAt = time.Now()
	return order, true, nil
}

// ListStalePending returns pending orders regardless of age unless overridden.
func (s *OrderRepositoryStub) ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.ListStalePendingFn != nil {
		return s.ListStalePendingFn(ctx, olderThan, limit)
	}
	var result []model.Order
	for _, order := range s.Orders {
		if order.Status == model.OrderStatusPending && len(result) < limit {
			result = append(result, *order)
		}
	}
	return result, nil
}
