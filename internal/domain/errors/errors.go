package errors

import "errors"

var (
	ErrDuplicateProviderOrderID = errors.New("duplicate provider order id")
	ErrOrderNotFound            = errors.New("order not found")
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrUnknownTariff            = errors.New("unknown tariff")
	ErrOrderCreationFailed      = errors.New("order creation failed")
	ErrProviderUnavailable      = errors.New("payment provider unavailable")
	ErrProviderRejected         = errors.New("payment provider rejected request")
)
