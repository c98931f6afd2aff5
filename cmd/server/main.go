package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/api"
	"github.com/spendwise-app/spendwise/internal/clients/agent"
	"github.com/spendwise-app/spendwise/internal/clients/cache"
	"github.com/spendwise-app/spendwise/internal/clients/kafka"
	"github.com/spendwise-app/spendwise/internal/config"
	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/insights"
	"github.com/spendwise-app/spendwise/internal/model/storage"
	"github.com/spendwise-app/spendwise/internal/tracing"
)

func main() {
	logger.Info("Server init - start")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init("spendwise-server")
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer func() {
		_ = closer.Close()
	}()

	store := newStore(conf)
	if conf.App().SeedSampleData() {
		if err = storage.SeedSampleData(context.Background(), store); err != nil {
			logger.Fatal("failed to seed sample data:", zap.Error(err))
		}
	}

	opts := api.Options{
		Insights:  insights.NewService(agent.New(conf.Agent())),
		TrendDays: conf.App().TrendWindowDays(),
	}

	producer, err := kafka.NewProducer(conf.Kafka())
	if err != nil {
		logger.Warn("kafka unavailable, async reports disabled", zap.Error(err))
	} else {
		defer producer.Close()
		opts.Reports = producer
	}

	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Warn("memcached unavailable, async reports disabled", zap.Error(err))
	} else {
		opts.Cache = mc
	}

	logger.Info("Server init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	server := api.NewServer(store, opts)
	if err = server.ListenAndServe(ctx, conf.Server().Port()); err != nil {
		logger.Fatal("server stopped:", zap.Error(err))
	}
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
