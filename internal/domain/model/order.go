package model

import "time"

// OrderStatus describes payment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// Terminal reports whether no further transition is permitted out of the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// PaymentOutcome is a terminal payment result reported by the provider.
type PaymentOutcome string

const (
	PaymentOutcomePaid   PaymentOutcome = "paid"
	PaymentOutcomeFailed PaymentOutcome = "failed"
)

// Status maps the outcome to the order status it produces.
func (o PaymentOutcome) Status() OrderStatus {
	if o == PaymentOutcomePaid {
		return OrderStatusPaid
	}
	return OrderStatusFailed
}

// Order describes a tariff purchase awaiting its payment outcome.
// ProviderOrderID is the sole correlation key for provider callbacks.
type Order struct {
	ID              string
	TgUserID        string
	ChatID          string
	TariffCode      string
	AmountKopecks   int64
	Provider        string
	ProviderOrderID string
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
