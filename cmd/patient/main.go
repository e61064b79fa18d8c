package main

import (
	"os"

	"github.com/careops/hospital-platform/internal/config"
	patienthandler "github.com/careops/hospital-platform/internal/handler/patient"
	"github.com/careops/hospital-platform/internal/repository/cached"
	"github.com/careops/hospital-platform/internal/repository/postgres"
	"github.com/careops/hospital-platform/internal/router"
	"github.com/careops/hospital-platform/internal/server"
	"github.com/careops/hospital-platform/internal/service/event"
	patientservice "github.com/careops/hospital-platform/internal/service/patient"
	"github.com/careops/hospital-platform/pkg/logger"
	"github.com/careops/hospital-platform/pkg/metrics"
)

const serviceName = "patient-service"

func main() {
	cfg, err := config.Load("patient")
	if err != nil {
		panic(err)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Service: serviceName})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	repo := cached.NewPatientRepository(
		postgres.NewPatientRepository(db),
		cfg.Cache.TTL, cfg.Cache.CleanupInterval,
	)
	events := event.NewService(postgres.NewOutboxRepository(db), log)
	svc := patientservice.NewService(repo, events, log)

	engine := router.New(serviceName, cfg, log, metrics.New("patient"))
	patienthandler.NewHandler(svc).RegisterRoutes(engine)

	if err := server.Run(engine, cfg.Server, log); err != nil {
		log.Error().Err(err).Msg("patient service exited")
		os.Exit(1)
	}
}
