// Package doctor manages the public doctor directory, profile edits
// and the admin approval flow.
package doctor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/teame/hospital-api/internal/authz"
	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

const (
	directoryCacheTTL = 30 * time.Second
	directoryCacheKey = "doctors:"
)

type Service struct {
	repo  repository.DoctorRepository
	cache *gocache.Cache
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(directoryCacheTTL, 5*time.Minute),
	}
}

// List returns the doctor directory, optionally filtered by
// specialization substring. The directory is public and read-heavy, so
// results are cached briefly.
func (s *Service) List(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	key := directoryCacheKey + strings.ToLower(specialization)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.List(ctx, specialization)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, doctors)
	return doctors, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a partial profile update. Admins may edit anyone; a
// doctor may edit their own profile only after approval.
func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.fetchForModify(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyDoctor(actor, doctor); err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Availability != nil {
		doctor.Availability = *req.Availability
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	s.cache.Flush()
	return doctor, nil
}

// Approve activates a PENDING doctor and the linked account. Admin
// only.
func (s *Service) Approve(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Doctor, error) {
	if err := authz.CanApproveDoctor(actor); err != nil {
		return nil, err
	}
	doctor, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()
	return doctor, nil
}

// Delete removes the doctor profile. The linked account is kept;
// accounts are never physically deleted.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	doctor, err := s.fetchForModify(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authz.CanModifyDoctor(actor, doctor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// fetchForModify loads the doctor, masking NotFound as Forbidden for
// callers who could not have modified the record anyway, so a denial
// reveals nothing about whether the id exists.
func (s *Service) fetchForModify(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperr.IsCode(err, apperr.ErrNotFound) {
			if aerr := authz.CanModifyDoctor(actor, &model.Doctor{}); aerr != nil {
				return nil, aerr
			}
		}
		return nil, err
	}
	return doctor, nil
}
