package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/polkiloo/tariffbot/internal/config"
	"github.com/polkiloo/tariffbot/internal/logger"
	"github.com/polkiloo/tariffbot/internal/storage/postgres"
)

// One-shot migration: orders created before chat tracking carry an empty
// chat_id, and for private chats the chat id equals the user id. Safe to
// re-run, rows with a chat_id already set are never touched.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	storage, err := postgres.New(ctx, cfg.DatabaseURI, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer storage.Close()

	updated, err := storage.BackfillChatID(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backfill failed: %v\n", err)
		os.Exit(1)
	}

	log.Info("chat_id backfill complete", slog.Int64("orders_updated", updated))
}
