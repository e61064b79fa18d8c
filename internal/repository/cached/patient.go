package cached

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
)

type patientRepository struct {
	inner repository.PatientRepository
	cache *gocache.Cache
}

func NewPatientRepository(inner repository.PatientRepository, ttl, cleanup time.Duration) repository.PatientRepository {
	return &patientRepository{
		inner: inner,
		cache: gocache.New(ttl, cleanup),
	}
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	key := id.String()
	if cached, ok := r.cache.Get(key); ok {
		return cached.(*model.Patient), nil
	}

	patient, err := r.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, patient, gocache.DefaultExpiration)
	return patient, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return r.inner.Create(ctx, patient)
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	return r.inner.GetByEmail(ctx, email)
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	return r.inner.List(ctx)
}

func (r *patientRepository) SearchByName(ctx context.Context, name string) ([]*model.Patient, error) {
	return r.inner.SearchByName(ctx, name)
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	if err := r.inner.Update(ctx, patient); err != nil {
		return err
	}
	r.cache.Delete(patient.ID.String())
	return nil
}

func (r *patientRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.SoftDelete(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(id.String())
	return nil
}
