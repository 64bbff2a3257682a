package model

// Tariff is a fixed-price subscription product offered to the user.
// Amounts are kept in kopecks to avoid floating-point money.
type Tariff struct {
	Code          string
	Title         string
	AmountKopecks int64
}
