package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/tariffbot/internal/server/http/handlers"
	"github.com/polkiloo/tariffbot/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. The webhook path
// is excluded from response compression; the request body must reach the
// handler exactly as the provider sent it, and no middleware here rewrites it.
func Setup(facade handlers.PaymentFacade, pinger handlers.Pinger, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/provider/webhook"})))

	webhookHandler := handlers.NewWebhookHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(pinger)

	engine.POST("/provider/webhook", webhookHandler.Handle)
	engine.GET("/healthz", healthHandler.Handle)

	return engine
}
