package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/domain/model"
	"github.com/polkiloo/tariffbot/internal/pkg/signature"
)

// HTTPProvider talks to a payment gateway over its REST API.
type HTTPProvider struct {
	name       string
	baseURL    *url.URL
	codec      *signature.Codec
	httpClient *http.Client
	logger     *slog.Logger
}

type invoiceRequest struct {
	Tariff        string `json:"tariff"`
	AmountKopecks int64  `json:"amountKopecks"`
}

// invoiceResponse mirrors the gateway invoice payload. The QR image arrives
// base64-encoded.
type invoiceResponse struct {
	OrderID string `json:"orderId"`
	QRImage string `json:"qrImage"`
	Status  string `json:"status,omitempty"`
}

// NewHTTPProvider creates HTTP provider with default timeout.
func NewHTTPProvider(name, baseURL string, codec *signature.Codec, logger *slog.Logger) (*HTTPProvider, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("provider url must be absolute")
	}
	return &HTTPProvider{
		name:    name,
		baseURL: parsed,
		codec:   codec,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (p *HTTPProvider) Name() string {
	return p.name
}

// CreateInvoice requests a new invoice from the gateway.
func (p *HTTPProvider) CreateInvoice(ctx context.Context, tariffCode string, amountKopecks int64) (*model.Invoice, error) {
	body, err := json.Marshal(invoiceRequest{Tariff: tariffCode, AmountKopecks: amountKopecks})
	if err != nil {
		return nil, err
	}

	endpoint := *p.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/invoices")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var data invoiceResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		if data.OrderID == "" {
			return nil, fmt.Errorf("%w: empty order id in invoice", domainErrors.ErrProviderRejected)
		}
		png, err := base64.StdEncoding.DecodeString(data.QRImage)
		if err != nil {
			return nil, fmt.Errorf("decode qr image: %w", err)
		}
		return &model.Invoice{ProviderOrderID: data.OrderID, QRPNG: png}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(resp.Body)
		p.logger.Warn("provider rejected invoice",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrProviderRejected, resp.Status)
	default:
		body, _ := io.ReadAll(resp.Body)
		p.logger.Error("provider invoice request failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrProviderUnavailable, resp.Status)
	}
}

// FetchStatus queries the gateway for invoice status.
func (p *HTTPProvider) FetchStatus(ctx context.Context, providerOrderID string) (InvoiceStatus, error) {
	endpoint := *p.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/invoices/", providerOrderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainErrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data invoiceResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return "", fmt.Errorf("decode invoice status: %w", err)
		}
		switch status := InvoiceStatus(data.Status); status {
		case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusFailed:
			return status, nil
		default:
			return "", fmt.Errorf("unknown invoice status %q", data.Status)
		}
	case http.StatusNotFound:
		return "", fmt.Errorf("%w: invoice %s", domainErrors.ErrOrderNotFound, providerOrderID)
	default:
		body, _ := io.ReadAll(resp.Body)
		p.logger.Error("provider status request failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("%w: %s", domainErrors.ErrProviderUnavailable, resp.Status)
	}
}

func (p *HTTPProvider) VerifyWebhookSignature(raw []byte, sig string) bool {
	return p.codec.Verify(raw, sig)
}
