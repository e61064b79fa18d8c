package main

import (
	"os"

	"github.com/careops/hospital-platform/internal/config"
	doctorhandler "github.com/careops/hospital-platform/internal/handler/doctor"
	"github.com/careops/hospital-platform/internal/repository/cached"
	"github.com/careops/hospital-platform/internal/repository/postgres"
	"github.com/careops/hospital-platform/internal/router"
	"github.com/careops/hospital-platform/internal/server"
	doctorservice "github.com/careops/hospital-platform/internal/service/doctor"
	"github.com/careops/hospital-platform/internal/service/event"
	"github.com/careops/hospital-platform/pkg/logger"
	"github.com/careops/hospital-platform/pkg/metrics"
)

const serviceName = "doctor-service"

func main() {
	cfg, err := config.Load("doctor")
	if err != nil {
		panic(err)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Service: serviceName})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	repo := cached.NewDoctorRepository(
		postgres.NewDoctorRepository(db),
		cfg.Cache.TTL, cfg.Cache.CleanupInterval,
	)
	events := event.NewService(postgres.NewOutboxRepository(db), log)
	svc := doctorservice.NewService(repo, events, log)

	engine := router.New(serviceName, cfg, log, metrics.New("doctor"))
	doctorhandler.NewHandler(svc).RegisterRoutes(engine)

	if err := server.Run(engine, cfg.Server, log); err != nil {
		log.Error().Err(err).Msg("doctor service exited")
		os.Exit(1)
	}
}
