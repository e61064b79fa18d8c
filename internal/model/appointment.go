package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// Terminal reports whether s keeps its slot. CANCELLED and NO_SHOW free the
// doctor's slot for rebooking; every other status holds it.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusNoShow
}

type Appointment struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	PatientID       uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID        uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	AppointmentDate string            `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string            `json:"appointment_time" db:"appointment_time"`
	Status          AppointmentStatus `json:"status" db:"status"`
	Reason          string            `json:"reason" db:"reason"`
	Notes           string            `json:"notes" db:"notes"`
	Diagnosis       string            `json:"diagnosis" db:"diagnosis"`
	Prescription    string            `json:"prescription" db:"prescription"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
	CancelledAt     *time.Time        `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
}

// AppointmentResponse is an Appointment enriched with peer-owned display
// fields. The enrichment fields stay empty when a peer service is down.
type AppointmentResponse struct {
	Appointment
	PatientName          string `json:"patient_name,omitempty"`
	DoctorName           string `json:"doctor_name,omitempty"`
	DoctorSpecialization string `json:"doctor_specialization,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID         `json:"patient_id" binding:"required"`
	DoctorID        uuid.UUID         `json:"doctor_id" binding:"required"`
	AppointmentDate string            `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string            `json:"appointment_time" binding:"required,datetime=15:04"`
	Reason          string            `json:"reason" binding:"required"`
	Notes           string            `json:"notes"`
	Status          AppointmentStatus `json:"status" binding:"omitempty,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW"`
}

type UpdateMedicalDetailsRequest struct {
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
}

// AppointmentFilters narrows list queries; zero values are ignored.
type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Date      string
	StartDate string
	EndDate   string
	Status    AppointmentStatus
}
