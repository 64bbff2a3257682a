package signature

import (
	"go.uber.org/fx"

	"github.com/polkiloo/tariffbot/internal/config"
)

// Module provides webhook signature codec via fx.
var Module = fx.Provide(newCodec)

type codecParams struct {
	fx.In

	Config *config.Config
}

func newCodec(p codecParams) *Codec {
	return NewCodec(p.Config.WebhookSecret)
}
