package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
	"github.com/careops/hospital-platform/internal/service/event"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
	"github.com/careops/hospital-platform/pkg/validator"
)

const (
	EventCreated            = "doctor.created"
	EventUpdated            = "doctor.updated"
	EventAvailabilityChange = "doctor.availability_changed"
	EventDeleted            = "doctor.deleted"
)

type Service struct {
	repo   repository.DoctorRepository
	events *event.Service
	logger zerolog.Logger
}

func NewService(repo repository.DoctorRepository, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := validator.NonNegative("consultation_fee", req.ConsultationFee); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	doctor := &model.Doctor{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		LicenseNumber:   req.LicenseNumber,
		Specialization:  req.Specialization,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Department:      req.Department,
		RoomNumber:      req.RoomNumber,
		AvailableDays:   req.AvailableDays,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		IsAvailable:     true,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"doctor already exists with email or license: %s / %s", req.Email, req.LicenseNumber,
			))
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.events.Emit(ctx, EventCreated, doctor.ID, doctor)
	s.logger.Info().Str("doctor_id", doctor.ID.String()).Msg("doctor created")
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", id)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) ListBySpecialization(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	doctors, err := s.repo.ListBySpecialization(ctx, specialization)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors by specialization: %w", err)
	}
	return doctors, nil
}

func (s *Service) ListByDepartment(ctx context.Context, department string) ([]*model.Doctor, error) {
	doctors, err := s.repo.ListByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors by department: %w", err)
	}
	return doctors, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Qualification != nil {
		doctor.Qualification = *req.Qualification
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		if err := validator.NonNegative("consultation_fee", *req.ConsultationFee); err != nil {
			return nil, apperrors.BadRequest(err.Error(), err)
		}
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.Department != nil {
		doctor.Department = *req.Department
	}
	if req.RoomNumber != nil {
		doctor.RoomNumber = *req.RoomNumber
	}
	if req.AvailableDays != nil {
		doctor.AvailableDays = req.AvailableDays
	}
	if req.StartTime != nil {
		doctor.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		doctor.EndTime = *req.EndTime
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	s.events.Emit(ctx, EventUpdated, doctor.ID, doctor)
	return doctor, nil
}

func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*model.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return nil, fmt.Errorf("failed to set doctor availability: %w", err)
	}
	doctor.IsAvailable = available

	s.events.Emit(ctx, EventAvailabilityChange, id, map[string]bool{"is_available": available})
	s.logger.Info().
		Str("doctor_id", id.String()).
		Bool("is_available", available).
		Msg("doctor availability changed")
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("doctor", id)
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.events.Emit(ctx, EventDeleted, id, nil)
	s.logger.Info().Str("doctor_id", id.String()).Msg("doctor deleted")
	return nil
}
