package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/clients/cache"
	"github.com/spendwise-app/spendwise/internal/clients/kafka"
	"github.com/spendwise-app/spendwise/internal/config"
	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/reports"
	"github.com/spendwise-app/spendwise/internal/model/storage"
)

func main() {
	logger.Info("Reporter init - start")

	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	// The worker reads the shared record set, so it needs the durable backend.
	db, err := storage.NewPostgresStore(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres:", zap.Error(err))
	}

	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Fatal("failed to init memcached:", zap.Error(err))
	}

	generator := reports.NewGenerator(db)

	consumer, err := kafka.NewConsumer(conf.Kafka(), generator, mc)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}

	logger.Info("Reporter init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Fatal("failed to start consuming", zap.Error(err))
	}
}
