package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
)

const appointmentColumns = `
	id, patient_id, doctor_id, appointment_date, appointment_time,
	status, reason, notes, diagnosis, prescription,
	created_at, updated_at, cancelled_at, completed_at
`

// Create inserts the appointment. The schema carries a partial unique index
//
//	CREATE UNIQUE INDEX appointments_slot_idx
//	ON appointments (doctor_id, appointment_date, appointment_time)
//	WHERE status NOT IN ('CANCELLED', 'NO_SHOW');
//
// so two concurrent bookings for one slot cannot both commit; the loser
// gets ErrSlotTaken.
func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, appointment_date, appointment_time,
			status, reason, notes, diagnosis, prescription,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.PatientID,
		apt.DoctorID,
		apt.AppointmentDate,
		apt.AppointmentTime,
		apt.Status,
		apt.Reason,
		apt.Notes,
		apt.Diagnosis,
		apt.Prescription,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1`

	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", argCount)
			args = append(args, filters.PatientID)
			argCount++
		}
		if filters.DoctorID != uuid.Nil {
			query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
			args = append(args, filters.DoctorID)
			argCount++
		}
		if filters.Date != "" {
			query += fmt.Sprintf(" AND appointment_date = $%d", argCount)
			args = append(args, filters.Date)
			argCount++
		}
		if filters.StartDate != "" {
			query += fmt.Sprintf(" AND appointment_date >= $%d", argCount)
			args = append(args, filters.StartDate)
			argCount++
		}
		if filters.EndDate != "" {
			query += fmt.Sprintf(" AND appointment_date <= $%d", argCount)
			args = append(args, filters.EndDate)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
	}

	query += " ORDER BY appointment_date ASC, appointment_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) FindConflicting(ctx context.Context, doctorID uuid.UUID, date, timeOfDay string) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND appointment_time = $3
		AND status NOT IN ('CANCELLED', 'NO_SHOW')
		LIMIT 1`

	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, doctorID, date, timeOfDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, reason = $2, notes = $3, diagnosis = $4,
			prescription = $5, cancelled_at = $6, completed_at = $7,
			updated_at = $8
		WHERE id = $9
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.Status,
		apt.Reason,
		apt.Notes,
		apt.Diagnosis,
		apt.Prescription,
		apt.CancelledAt,
		apt.CompletedAt,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return requireRows(result)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return requireRows(result)
}
