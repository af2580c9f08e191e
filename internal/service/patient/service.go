// Package patient manages patient profile access, guarded to the
// owning account and admins.
package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/teame/hospital-api/internal/authz"
	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessPatient(actor, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessPatient(actor, patient); err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Contact != nil {
		patient.Contact = *req.Contact
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// fetch loads the patient, masking NotFound as Forbidden for callers
// who would not have been allowed to see the record anyway. A denial
// must not reveal whether the id exists.
func (s *Service) fetch(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperr.IsCode(err, apperr.ErrNotFound) {
			if aerr := authz.CanAccessPatient(actor, &model.Patient{}); aerr != nil {
				return nil, aerr
			}
		}
		return nil, err
	}
	return patient, nil
}
