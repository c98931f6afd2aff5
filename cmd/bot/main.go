package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/clients/tg"
	"github.com/spendwise-app/spendwise/internal/config"
	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/messages"
	"github.com/spendwise-app/spendwise/internal/model/storage"
	"github.com/spendwise-app/spendwise/internal/tracing"
)

func main() {
	logger.Info("Bot init - start")

	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init("spendwise-bot")
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer func() {
		_ = closer.Close()
	}()

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}

	store := newStore(conf)
	msgService := messages.NewService(client, store)

	logger.Info("Bot init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client.ListenUpdates(ctx, msgService)
}

func newStore(conf *config.Service) storage.Store {
	if conf.App().Storage() == "postgres" {
		store, err := storage.NewPostgresStore(conf.Postgres())
		if err != nil {
			logger.Fatal("failed to init postgres:", zap.Error(err))
		}
		return store
	}
	return storage.NewInMemStore()
}
