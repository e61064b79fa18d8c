package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/careops/hospital-platform/internal/model"
)

// Sentinel errors shared by every implementation. Services map these onto
// the client-facing taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrSlotTaken surfaces the partial unique index on
	// (doctor_id, appointment_date, appointment_time); the index, not the
	// advisory conflict query, is the correctness boundary.
	ErrSlotTaken = errors.New("appointment slot already taken")
)

// Soft-deleted rows are filtered inside the implementations; callers never
// repeat the predicate.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByEmail(ctx context.Context, email string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	SearchByName(ctx context.Context, name string) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	ListBySpecialization(ctx context.Context, specialization string) ([]*model.Doctor, error)
	ListByDepartment(ctx context.Context, department string) ([]*model.Doctor, error)
	ListAvailable(ctx context.Context) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// FindConflicting returns the non-terminal appointment holding
	// (doctorID, date, timeOfDay), or ErrNotFound when the slot is free.
	FindConflicting(ctx context.Context, doctorID uuid.UUID, date, timeOfDay string) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Invoice, error)
	ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*model.Invoice, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Invoice, error)
	ListByStatus(ctx context.Context, status model.InvoiceStatus) ([]*model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// CredentialStore is the narrow capability the gateway authenticates
// against; implementations decide where credentials live.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (*model.Credential, error)
	// Insert returns ErrDuplicate when the username is already taken.
	Insert(ctx context.Context, cred *model.Credential) error
}
