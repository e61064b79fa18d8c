package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/careops/hospital-platform/internal/config"
	"github.com/careops/hospital-platform/internal/email"
	"github.com/careops/hospital-platform/internal/repository/postgres"
	"github.com/careops/hospital-platform/internal/worker"
	"github.com/careops/hospital-platform/pkg/logger"
	"github.com/careops/hospital-platform/pkg/messaging/redis"
)

const serviceName = "worker"

func main() {
	// Each service stages outbox rows in its own database, so one worker
	// instance runs per database: -config worker, -config worker-billing, ...
	cfgName := flag.String("config", serviceName, "config file name, without extension")
	flag.Parse()

	cfg, err := config.Load(*cfgName)
	if err != nil {
		panic(err)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Service: serviceName})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(redis.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to broker")
	}
	defer broker.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processor := worker.NewOutboxProcessor(postgres.NewOutboxRepository(db), broker, log)
	notifier := worker.NewNotifier(
		broker,
		email.NewSender(cfg.Email, log),
		cfg.Email.NotifyTo,
		log,
	)

	go processor.Run(ctx)
	if err := notifier.Run(ctx); err != nil {
		log.Error().Err(err).Msg("notifier exited")
		os.Exit(1)
	}
}
