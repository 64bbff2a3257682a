package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/tariffbot/internal/config"
	"github.com/polkiloo/tariffbot/internal/pkg/signature"
)

// Module exposes the configured provider implementation to the fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
	Codec  *signature.Codec
	Logger *slog.Logger
}

func newProvider(p providerParams) (Provider, error) {
	if p.Config.PaymentProvider == config.MockProviderName {
		return NewMockProvider(p.Codec), nil
	}
	return NewHTTPProvider(p.Config.PaymentProvider, p.Config.ProviderAddress, p.Codec, p.Logger)
}
