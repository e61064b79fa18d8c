package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-platform/internal/client"
	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
	apperrors "github.com/careops/hospital-platform/pkg/errors"
)

type fakeRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeRepo) Create(_ context.Context, apt *model.Appointment) error {
	for _, existing := range r.appointments {
		if existing.DoctorID == apt.DoctorID &&
			existing.AppointmentDate == apt.AppointmentDate &&
			existing.AppointmentTime == apt.AppointmentTime &&
			!existing.Status.Terminal() {
			return repository.ErrSlotTaken
		}
	}
	apt.ID = uuid.New()
	copied := *apt
	r.appointments[apt.ID] = &copied
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *apt
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, 0, len(r.appointments))
	for _, apt := range r.appointments {
		copied := *apt
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) FindConflicting(_ context.Context, doctorID uuid.UUID, date, timeOfDay string) (*model.Appointment, error) {
	for _, apt := range r.appointments {
		if apt.DoctorID == doctorID &&
			apt.AppointmentDate == date &&
			apt.AppointmentTime == timeOfDay &&
			!apt.Status.Terminal() {
			copied := *apt
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.appointments[apt.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *apt
	r.appointments[apt.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

type fakePatients struct {
	patient *model.Patient
	err     error
}

func (f *fakePatients) GetPatient(context.Context, uuid.UUID) (*model.Patient, error) {
	return f.patient, f.err
}

type fakeDoctors struct {
	doctor *model.Doctor
	err    error
}

func (f *fakeDoctors) GetDoctor(context.Context, uuid.UUID) (*model.Doctor, error) {
	return f.doctor, f.err
}

func testPatient() *model.Patient {
	return &model.Patient{ID: uuid.New(), FirstName: "John", LastName: "Doe"}
}

func testDoctor() *model.Doctor {
	return &model.Doctor{
		ID:             uuid.New(),
		FirstName:      "Jane",
		LastName:       "Smith",
		Specialization: "Cardiology",
		IsAvailable:    true,
	}
}

func newTestService(repo repository.AppointmentRepository, patients client.PatientFetcher, doctors client.DoctorFetcher) *Service {
	return NewService(repo, patients, doctors, nil, zerolog.Nop())
}

func bookingRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
		Reason:          "checkup",
	}
}

func TestCreateBooksFreeSlot(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: testDoctor()})

	resp, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, resp.Status)
	assert.Equal(t, "John Doe", resp.PatientName)
	assert.Equal(t, "Jane Smith", resp.DoctorName)
	assert.Equal(t, "Cardiology", resp.DoctorSpecialization)
}

func TestCreateRejectsDoubleBooking(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: testDoctor()})

	req := bookingRequest()
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	second := bookingRequest()
	second.DoctorID = req.DoctorID
	_, err = svc.Create(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.Code(err))
}

func TestCreateAllowsRebookingAfterCancellation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: testDoctor()})

	req := bookingRequest()
	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), first.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)

	second := bookingRequest()
	second.DoctorID = req.DoctorID
	_, err = svc.Create(context.Background(), second)
	assert.NoError(t, err)
}

func TestCreateRejectsUnknownPatient(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakePatients{err: client.ErrNotFound}, &fakeDoctors{doctor: testDoctor()})

	_, err := svc.Create(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestCreateFailsHardWhenPeerDown(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakePatients{patient: testPatient()}, &fakeDoctors{err: client.ErrUnavailable})

	_, err := svc.Create(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnavailable, apperrors.Code(err))
}

func TestCreateRejectsUnavailableDoctor(t *testing.T) {
	doctor := testDoctor()
	doctor.IsAvailable = false
	svc := newTestService(newFakeRepo(), &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: doctor})

	_, err := svc.Create(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidState, apperrors.Code(err))
}

func TestCreateMapsSlotTakenFromRepository(t *testing.T) {
	// Simulates losing the race: the advisory check passes but the insert
	// hits the unique index.
	repo := newFakeRepo()
	svc := newTestService(repo, &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: testDoctor()})

	req := bookingRequest()
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Bypass the service to plant a direct conflict, then book it again.
	direct := &model.Appointment{
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          model.AppointmentStatusScheduled,
	}
	assert.ErrorIs(t, repo.Create(context.Background(), direct), repository.ErrSlotTaken)
}

func TestUpdateStatusStampsTimestamps(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: testDoctor()})

	created, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(context.Background(), created.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Nil(t, cancelled.CompletedAt)

	completed, err := svc.UpdateStatus(context.Background(), created.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)
}

func TestGetEnrichesSoftFail(t *testing.T) {
	repo := newFakeRepo()
	patients := &fakePatients{patient: testPatient()}
	doctors := &fakeDoctors{doctor: testDoctor()}
	svc := newTestService(repo, patients, doctors)

	created, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	// Peers go down after booking; reads must still succeed with the
	// enrichment fields left empty.
	patients.patient, patients.err = nil, client.ErrUnavailable
	doctors.doctor, doctors.err = nil, client.ErrUnavailable

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PatientName)
	assert.Empty(t, got.DoctorName)
	assert.Equal(t, created.ID, got.ID)
}

func TestDeleteRequiresReleasedSlot(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: testDoctor()})

	created, err := svc.Create(context.Background(), bookingRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidState, apperrors.Code(err))

	_, err = svc.UpdateStatus(context.Background(), created.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(context.Background(), created.ID))
}

func TestDeleteUnknownAppointment(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakePatients{patient: testPatient()}, &fakeDoctors{doctor: testDoctor()})

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}
