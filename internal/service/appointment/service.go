package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/client"
	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
	"github.com/careops/hospital-platform/internal/service/event"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
)

const (
	EventCreated       = "appointment.created"
	EventStatusChanged = "appointment.status_changed"
)

// Service guards the one-appointment-per-doctor-per-slot invariant and
// drives the appointment lifecycle. Peer validations on the write path are
// hard failures; enrichment on the read path degrades silently.
type Service struct {
	repo     repository.AppointmentRepository
	patients client.PatientFetcher
	doctors  client.DoctorFetcher
	events   *event.Service
	logger   zerolog.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	patients client.PatientFetcher,
	doctors client.DoctorFetcher,
	events *event.Service,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
		events:   events,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentResponse, error) {
	// Hard-fail validations: the booking must not commit against a patient
	// or doctor that cannot be proven to exist right now.
	patient, err := s.patients.GetPatient(ctx, req.PatientID)
	if err != nil {
		return nil, peerError("patient", req.PatientID, err)
	}

	doctor, err := s.doctors.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, peerError("doctor", req.DoctorID, err)
	}
	if !doctor.IsAvailable {
		return nil, apperrors.InvalidState("doctor is not available for appointments")
	}

	// Advisory check for the friendly message; the partial unique index in
	// the repository is what actually serializes concurrent bookings.
	if _, err := s.repo.FindConflicting(ctx, req.DoctorID, req.AppointmentDate, req.AppointmentTime); err == nil {
		return nil, slotConflict(req)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}

	status := req.Status
	if status == "" {
		status = model.AppointmentStatusScheduled
	}

	apt := &model.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          status,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, slotConflict(req)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.events.Emit(ctx, EventCreated, apt.ID, apt)
	s.logger.Info().
		Str("appointment_id", apt.ID.String()).
		Str("doctor_id", apt.DoctorID.String()).
		Str("date", apt.AppointmentDate).
		Str("time", apt.AppointmentTime).
		Msg("appointment created")

	resp := &model.AppointmentResponse{Appointment: *apt}
	resp.PatientName = patient.FullName()
	resp.DoctorName = doctor.FullName()
	resp.DoctorSpecialization = doctor.Specialization
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentResponse, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", id)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return s.enrich(ctx, apt), nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentResponse, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	responses := make([]*model.AppointmentResponse, 0, len(appointments))
	for _, apt := range appointments {
		responses = append(responses, s.enrich(ctx, apt))
	}
	return responses, nil
}

// UpdateStatus sets the status with its timestamp side effects. Transition
// legality is deliberately not enforced beyond existence; operators use
// this as an escape hatch to correct records.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.AppointmentResponse, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", id)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	apt.Status = status
	now := time.Now()
	switch status {
	case model.AppointmentStatusCancelled:
		apt.CancelledAt = &now
	case model.AppointmentStatusCompleted:
		apt.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	s.events.Emit(ctx, EventStatusChanged, apt.ID, apt)
	s.logger.Info().
		Str("appointment_id", id.String()).
		Str("status", string(status)).
		Msg("appointment status updated")

	return s.enrich(ctx, apt), nil
}

func (s *Service) UpdateMedicalDetails(ctx context.Context, id uuid.UUID, diagnosis, prescription string) (*model.AppointmentResponse, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", id)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	apt.Diagnosis = diagnosis
	apt.Prescription = prescription

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update medical details: %w", err)
	}
	return s.enrich(ctx, apt), nil
}

// Delete physically removes an appointment. Cancellation is the lifecycle
// end-state; hard deletion is an operator maintenance operation and only
// permitted once the slot has already been released.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", id)
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if !apt.Status.Terminal() && apt.Status != model.AppointmentStatusCompleted {
		return apperrors.InvalidState("only cancelled, no-show or completed appointments can be deleted")
	}

	return s.repo.Delete(ctx, id)
}

// enrich attaches peer-owned display fields in soft-fail mode: a peer
// outage leaves the fields empty, it never fails the read of a persisted
// appointment.
func (s *Service) enrich(ctx context.Context, apt *model.Appointment) *model.AppointmentResponse {
	resp := &model.AppointmentResponse{Appointment: *apt}

	if patient, err := s.patients.GetPatient(ctx, apt.PatientID); err == nil {
		resp.PatientName = patient.FullName()
	} else {
		s.logger.Warn().Err(err).
			Str("appointment_id", apt.ID.String()).
			Msg("could not enrich appointment with patient details")
	}

	if doctor, err := s.doctors.GetDoctor(ctx, apt.DoctorID); err == nil {
		resp.DoctorName = doctor.FullName()
		resp.DoctorSpecialization = doctor.Specialization
	} else {
		s.logger.Warn().Err(err).
			Str("appointment_id", apt.ID.String()).
			Msg("could not enrich appointment with doctor details")
	}

	return resp
}

func slotConflict(req *model.CreateAppointmentRequest) error {
	return apperrors.Conflict(fmt.Sprintf(
		"doctor already has an appointment at %s on %s",
		req.AppointmentTime, req.AppointmentDate,
	))
}

func peerError(resource string, id uuid.UUID, err error) error {
	if errors.Is(err, client.ErrNotFound) {
		return apperrors.NotFound(resource, id)
	}
	return apperrors.Unavailable(resource, err)
}
