package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/tariffbot/internal/adapter/payment"
	"github.com/polkiloo/tariffbot/internal/app"
	"github.com/polkiloo/tariffbot/internal/bot"
	"github.com/polkiloo/tariffbot/internal/config"
	"github.com/polkiloo/tariffbot/internal/logger"
	"github.com/polkiloo/tariffbot/internal/pkg/signature"
	"github.com/polkiloo/tariffbot/internal/server/http/handlers"
	"github.com/polkiloo/tariffbot/internal/server/http/router"
	"github.com/polkiloo/tariffbot/internal/storage/postgres"
	"github.com/polkiloo/tariffbot/internal/tariff"
	"github.com/polkiloo/tariffbot/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		tariff.Module,
		signature.Module,
		postgres.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(f *app.PaymentFacade) handlers.PaymentFacade { return f }),
		fx.Provide(func(s *postgres.Storage) handlers.Pinger { return s }),
		router.Module,
		bot.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
