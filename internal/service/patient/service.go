package patient

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
)

const (
	EventCreated = "patient.created"
	EventUpdated = "patient.updated"
	EventDeleted = "patient.deleted"
)

type Service struct {
	repo   repository.PatientRepository
	events *event.Service
	logger zerolog.Logger
}

func NewService(repo repository.PatientRepository, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Address:          req.Address,
		BloodGroup:       req.BloodGroup,
		EmergencyContact: req.EmergencyContact,
		MedicalHistory:   req.MedicalHistory,
		Allergies:        req.Allergies,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict(fmt.Sprintf("patient already exists with email: %s", req.Email))
		}
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.events.Emit(ctx, EventCreated, patient.ID, patient)
	s.logger.Info().Str("patient_id", patient.ID.String()).Msg("patient created")
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", id)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	patient, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", email)
		}
		return nil, fmt.Errorf("failed to get patient by email: %w", err)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) Search(ctx context.Context, name string) ([]*model.Patient, error) {
	patients, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict(fmt.Sprintf("patient already exists with email: %s", patient.Email))
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	s.events.Emit(ctx, EventUpdated, patient.ID, patient)
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("patient", id)
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	s.events.Emit(ctx, EventDeleted, id, nil)
	s.logger.Info().Str("patient_id", id.String()).Msg("patient deleted")
	return nil
}
