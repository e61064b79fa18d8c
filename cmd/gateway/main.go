package main

import (
	"os"

	"github.com/careops/hospital-platform/internal/config"
	"github.com/careops/hospital-platform/internal/gateway"
	authhandler "github.com/careops/hospital-platform/internal/handler/auth"
	"github.com/careops/hospital-platform/internal/repository"
	"github.com/careops/hospital-platform/internal/repository/memory"
	"github.com/careops/hospital-platform/internal/repository/postgres"
	"github.com/careops/hospital-platform/internal/router"
	"github.com/careops/hospital-platform/internal/server"
	authservice "github.com/careops/hospital-platform/internal/service/auth"
	"github.com/careops/hospital-platform/pkg/logger"
	"github.com/careops/hospital-platform/pkg/metrics"
	"github.com/careops/hospital-platform/pkg/security"
	"github.com/careops/hospital-platform/pkg/token"
)

const serviceName = "gateway"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(err)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Service: serviceName})

	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := security.NewBcryptHasher(0)

	// Durable credentials when a database is configured; seeded in-memory
	// demo users otherwise.
	var store repository.CredentialStore
	if cfg.Database.Host != "" {
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		store = postgres.NewCredentialStore(db)
	} else {
		memStore := memory.NewCredentialStore()
		users := make(map[string]string, len(cfg.Gateway.DemoUsers))
		for _, u := range cfg.Gateway.DemoUsers {
			users[u.Username] = u.Password
		}
		if err := memStore.Seed(users, hasher); err != nil {
			log.Fatal().Err(err).Msg("failed to seed credentials")
		}
		store = memStore
	}

	table, err := gateway.NewTable(cfg.Gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid route table")
	}
	filter := gateway.NewFilter(tokens, cfg.Gateway.PublicEndpoints, log)
	proxy := gateway.NewProxy(table, filter, log)

	engine := router.New(serviceName, cfg, log, metrics.New(serviceName))
	authhandler.NewHandler(authservice.NewService(store, hasher, tokens, log)).RegisterRoutes(engine)
	engine.NoRoute(proxy.Handle)

	if err := server.Run(engine, cfg.Server, log); err != nil {
		log.Error().Err(err).Msg("gateway exited")
		os.Exit(1)
	}
}
