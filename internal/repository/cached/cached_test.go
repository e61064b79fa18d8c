package cached

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
)

type stubDoctorRepo struct {
	repository.DoctorRepository

	doctor *model.Doctor
	gets   int
}

func (s *stubDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	s.gets++
	if s.doctor == nil || s.doctor.ID != id {
		return nil, repository.ErrNotFound
	}
	copied := *s.doctor
	return &copied, nil
}

func (s *stubDoctorRepo) Update(_ context.Context, doctor *model.Doctor) error {
	copied := *doctor
	s.doctor = &copied
	return nil
}

func (s *stubDoctorRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	s.doctor.IsAvailable = available
	return nil
}

func TestDoctorGetIsReadThrough(t *testing.T) {
	inner := &stubDoctorRepo{doctor: &model.Doctor{ID: uuid.New(), FirstName: "Jane"}}
	repo := NewDoctorRepository(inner, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := repo.Get(context.Background(), inner.doctor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.FirstName)
	}
	assert.Equal(t, 1, inner.gets)
}

func TestDoctorMissesAreNotCached(t *testing.T) {
	inner := &stubDoctorRepo{}
	repo := NewDoctorRepository(inner, time.Minute, time.Minute)

	id := uuid.New()
	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 2, inner.gets)
}

func TestDoctorUpdateInvalidates(t *testing.T) {
	inner := &stubDoctorRepo{doctor: &model.Doctor{ID: uuid.New(), FirstName: "Jane"}}
	repo := NewDoctorRepository(inner, time.Minute, time.Minute)

	_, err := repo.Get(context.Background(), inner.doctor.ID)
	require.NoError(t, err)

	updated := *inner.doctor
	updated.FirstName = "Janet"
	require.NoError(t, repo.Update(context.Background(), &updated))

	got, err := repo.Get(context.Background(), inner.doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.FirstName)
	assert.Equal(t, 2, inner.gets)
}

func TestDoctorAvailabilityChangeInvalidates(t *testing.T) {
	inner := &stubDoctorRepo{doctor: &model.Doctor{ID: uuid.New(), IsAvailable: true}}
	repo := NewDoctorRepository(inner, time.Minute, time.Minute)

	_, err := repo.Get(context.Background(), inner.doctor.ID)
	require.NoError(t, err)

	require.NoError(t, repo.SetAvailability(context.Background(), inner.doctor.ID, false))

	got, err := repo.Get(context.Background(), inner.doctor.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
}

type stubPatientRepo struct {
	repository.PatientRepository

	patient *model.Patient
	gets    int
}

func (s *stubPatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	s.gets++
	if s.patient == nil || s.patient.ID != id {
		return nil, repository.ErrNotFound
	}
	copied := *s.patient
	return &copied, nil
}

func (s *stubPatientRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.patient = nil
	return nil
}

func TestPatientDeleteInvalidates(t *testing.T) {
	inner := &stubPatientRepo{patient: &model.Patient{ID: uuid.New(), FirstName: "John"}}
	repo := NewPatientRepository(inner, time.Minute, time.Minute)

	id := inner.patient.ID
	_, err := repo.Get(context.Background(), id)
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), id))

	_, err = repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
