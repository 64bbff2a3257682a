package dto

// WebhookRequest mirrors the provider callback payload. Unknown fields are
// ignored, the signature covers the raw body anyway.
type WebhookRequest struct {
	Event           string `json:"event"`
	ProviderOrderID string `json:"providerOrderId"`
}

// WebhookResponse is the deterministic acknowledgement returned to the provider.
type WebhookResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
