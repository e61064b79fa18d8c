package main

import (
	"os"

	"github.com/careops/hospital-platform/internal/client"
	"github.com/careops/hospital-platform/internal/config"
	appointmenthandler "github.com/careops/hospital-platform/internal/handler/appointment"
	"github.com/careops/hospital-platform/internal/repository/postgres"
	"github.com/careops/hospital-platform/internal/router"
	"github.com/careops/hospital-platform/internal/server"
	appointmentservice "github.com/careops/hospital-platform/internal/service/appointment"
	"github.com/careops/hospital-platform/internal/service/event"
	"github.com/careops/hospital-platform/pkg/logger"
	"github.com/careops/hospital-platform/pkg/metrics"
)

const serviceName = "appointment-service"

func main() {
	cfg, err := config.Load("appointment")
	if err != nil {
		panic(err)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Service: serviceName})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	patients := client.NewPatientClient(cfg.Peers.PatientURL, cfg.Peers.Timeout, log)
	doctors := client.NewDoctorClient(cfg.Peers.DoctorURL, cfg.Peers.Timeout, log)

	events := event.NewService(postgres.NewOutboxRepository(db), log)
	svc := appointmentservice.NewService(
		postgres.NewAppointmentRepository(db),
		patients, doctors, events, log,
	)

	engine := router.New(serviceName, cfg, log, metrics.New("appointment"))
	appointmenthandler.NewHandler(svc).RegisterRoutes(engine)

	if err := server.Run(engine, cfg.Server, log); err != nil {
		log.Error().Err(err).Msg("appointment service exited")
		os.Exit(1)
	}
}
