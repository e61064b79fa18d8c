package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/model"
)

// PatientFetcher and friends are the capabilities domain services accept;
// tests substitute fakes, production wires the typed clients below.
type PatientFetcher interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
}

type DoctorFetcher interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
}

type AppointmentFetcher interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
}

type PatientClient struct {
	*Client
}

func NewPatientClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *PatientClient {
	return &PatientClient{New(baseURL, timeout, logger)}
}

func (c *PatientClient) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := c.fetch(ctx, id.String(), &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

type DoctorClient struct {
	*Client
}

func NewDoctorClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *DoctorClient {
	return &DoctorClient{New(baseURL, timeout, logger)}
}

func (c *DoctorClient) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.fetch(ctx, id.String(), &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

type AppointmentClient struct {
	*Client
}

func NewAppointmentClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *AppointmentClient {
	return &AppointmentClient{New(baseURL, timeout, logger)}
}

func (c *AppointmentClient) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var apt model.Appointment
	if err := c.fetch(ctx, id.String(), &apt); err != nil {
		return nil, err
	}
	return &apt, nil
}
