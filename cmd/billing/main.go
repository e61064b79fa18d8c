package main

import (
	"os"

	"github.com/careops/hospital-platform/internal/client"
	"github.com/careops/hospital-platform/internal/config"
	invoicehandler "github.com/careops/hospital-platform/internal/handler/invoice"
	"github.com/careops/hospital-platform/internal/repository/postgres"
	"github.com/careops/hospital-platform/internal/router"
	"github.com/careops/hospital-platform/internal/server"
	"github.com/careops/hospital-platform/internal/service/billing"
	"github.com/careops/hospital-platform/internal/service/event"
	"github.com/careops/hospital-platform/pkg/logger"
	"github.com/careops/hospital-platform/pkg/metrics"
)

const serviceName = "billing-service"

func main() {
	cfg, err := config.Load("billing")
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
	appointments := client.NewAppointmentClient(cfg.Peers.AppointmentURL, cfg.Peers.Timeout, log)

	events := event.NewService(postgres.NewOutboxRepository(db), log)
	svc := billing.NewService(
		postgres.NewInvoiceRepository(db),
		patients, appointments, events, log,
	)

	engine := router.New(serviceName, cfg, log, metrics.New("billing"))
	invoicehandler.NewHandler(svc).RegisterRoutes(engine)

	if err := server.Run(engine, cfg.Server, log); err != nil {
		log.Error().Err(err).Msg("billing service exited")
		os.Exit(1)
	}
}
