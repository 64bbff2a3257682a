package bot

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/tariffbot/internal/app"
	"github.com/polkiloo/tariffbot/internal/config"
	"github.com/polkiloo/tariffbot/internal/usecase"
)

// Module provides the telegram front end. With an empty BOT_TOKEN the bot is
// disabled and the process serves only the webhook endpoint.
var Module = fx.Options(
	fx.Provide(newBot),
	fx.Invoke(bindNotifier),
	fx.Invoke(registerLifecycle),
)

type botParams struct {
	fx.In

	Config *config.Config
	Facade *app.PaymentFacade
	Logger *slog.Logger
}

func newBot(p botParams) (*Bot, error) {
	if p.Config.BotToken == "" {
		p.Logger.Warn("BOT_TOKEN is empty, telegram front end disabled")
		return nil, nil
	}
	return New(p.Config.BotToken, p.Facade, p.Logger)
}

func bindNotifier(uc *usecase.OrderUseCase, b *Bot) {
	if b == nil {
		return
	}
	uc.SetNotifier(b)
}

func registerLifecycle(lc fx.Lifecycle, appCtx context.Context, b *Bot) {
	if b == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			b.Start(appCtx)
			return nil
		},
		OnStop: func(context.Context) error {
			b.Stop()
			return nil
		},
	})
}
