package model

// Invoice is a provider-side payment request the user pays against.
// QRPNG carries the ready-to-send QR image returned by the provider.
type Invoice struct {
	ProviderOrderID string
	QRPNG           []byte
}
