// Package cached wraps repositories with an in-process read-through cache.
// Only single-entity lookups are cached; every write invalidates its key so
// peer services never see a stale doctor/patient longer than the TTL.
package cached

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/careops/hospital-platform/internal/model"
	"github.com/careops/hospital-platform/internal/repository"
)

type doctorRepository struct {
	inner repository.DoctorRepository
	cache *gocache.Cache
}

func NewDoctorRepository(inner repository.DoctorRepository, ttl, cleanup time.Duration) repository.DoctorRepository {
	return &doctorRepository{
		inner: inner,
		cache: gocache.New(ttl, cleanup),
	}
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	key := id.String()
	if cached, ok := r.cache.Get(key); ok {
		return cached.(*model.Doctor), nil
	}

	doctor, err := r.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, doctor, gocache.DefaultExpiration)
	return doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return r.inner.Create(ctx, doctor)
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	return r.inner.List(ctx)
}

func (r *doctorRepository) ListBySpecialization(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	return r.inner.ListBySpecialization(ctx, specialization)
}

func (r *doctorRepository) ListByDepartment(ctx context.Context, department string) ([]*model.Doctor, error) {
	return r.inner.ListByDepartment(ctx, department)
}

func (r *doctorRepository) ListAvailable(ctx context.Context) ([]*model.Doctor, error) {
	return r.inner.ListAvailable(ctx)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	if err := r.inner.Update(ctx, doctor); err != nil {
		return err
	}
	r.cache.Delete(doctor.ID.String())
	return nil
}

func (r *doctorRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	if err := r.inner.SetAvailability(ctx, id, available); err != nil {
		return err
	}
	r.cache.Delete(id.String())
	return nil
}

func (r *doctorRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.SoftDelete(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(id.String())
	return nil
}
