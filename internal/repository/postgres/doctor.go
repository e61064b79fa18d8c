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

const doctorColumns = `
	id, first_name, last_name, email, phone, license_number,
	specialization, qualification, experience_years, consultation_fee,
	department, room_number, available_days, start_time, end_time,
	is_available, created_at, updated_at, deleted_at
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, first_name, last_name, email, phone, license_number,
			specialization, qualification, experience_years, consultation_fee,
			department, room_number, available_days, start_time, end_time,
			is_available, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Phone,
		doctor.LicenseNumber,
		doctor.Specialization,
		doctor.Qualification,
		doctor.ExperienceYears,
		doctor.ConsultationFee,
		doctor.Department,
		doctor.RoomNumber,
		doctor.AvailableDays,
		doctor.StartTime,
		doctor.EndTime,
		doctor.IsAvailable,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + `
		FROM doctors
		WHERE id = $1 AND deleted_at IS NULL`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + `
		FROM doctors
		WHERE deleted_at IS NULL
		ORDER BY last_name ASC`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListBySpecialization(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + `
		FROM doctors
		WHERE specialization = $1 AND deleted_at IS NULL
		ORDER BY last_name ASC`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, specialization); err != nil {
		return nil, fmt.Errorf("failed to list doctors by specialization: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListByDepartment(ctx context.Context, department string) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + `
		FROM doctors
		WHERE department = $1 AND deleted_at IS NULL
		ORDER BY last_name ASC`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, department); err != nil {
		return nil, fmt.Errorf("failed to list doctors by department: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListAvailable(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + `
		FROM doctors
		WHERE is_available = true AND deleted_at IS NULL
		ORDER BY last_name ASC`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list available doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET phone = $1, specialization = $2, qualification = $3,
			experience_years = $4, consultation_fee = $5, department = $6,
			room_number = $7, available_days = $8, start_time = $9,
			end_time = $10, updated_at = $11
		WHERE id = $12 AND deleted_at IS NULL
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Phone,
		doctor.Specialization,
		doctor.Qualification,
		doctor.ExperienceYears,
		doctor.ConsultationFee,
		doctor.Department,
		doctor.RoomNumber,
		doctor.AvailableDays,
		doctor.StartTime,
		doctor.EndTime,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return requireRows(result)
}

func (r *doctorRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `
		UPDATE doctors
		SET is_available = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update doctor availability: %w", err)
	}
	return requireRows(result)
}

func (r *doctorRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE doctors
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return requireRows(result)
}
