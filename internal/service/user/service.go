// Package user resolves the role-specific profile view for an
// authenticated account.
package user

import (
	"context"

	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository"
	apperr "github.com/teame/hospital-api/pkg/errors"
	"github.com/teame/hospital-api/pkg/logger"
)

type Service struct {
	accountRepo repository.AccountRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	logger      *logger.Logger

	resolvers map[model.Role]profileResolver
}

// profileResolver fills the role-specific part of a profile. Keeping
// the dispatch in one table avoids re-branching on role per operation.
type profileResolver func(ctx context.Context, s *Service, actor model.Actor, profile *model.UserProfile) error

func NewService(accountRepo repository.AccountRepository, doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository, lg *logger.Logger) *Service {
	s := &Service{
		accountRepo: accountRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		logger:      lg,
	}
	s.resolvers = map[model.Role]profileResolver{
		model.RoleDoctor:  resolveDoctor,
		model.RolePatient: resolvePatient,
		model.RoleAdmin:   resolveAdmin,
	}
	return s
}

// GetProfile returns the account plus its role profile. A DOCTOR or
// PATIENT account without a profile is a data-integrity fault, logged
// as such and surfaced as an internal error.
func (s *Service) GetProfile(ctx context.Context, actor model.Actor) (*model.UserProfile, error) {
	account, err := s.accountRepo.Get(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		Status:    account.Status,
	}

	resolve, ok := s.resolvers[account.Role]
	if !ok {
		return nil, apperr.Internal(nil)
	}
	if err := resolve(ctx, s, actor, profile); err != nil {
		if apperr.IsCode(err, apperr.ErrProfileMissing) {
			s.logger.DataIntegrity(err, "account role has no matching profile",
				"account_id", account.ID.String(), "role", string(account.Role))
		}
		return nil, err
	}
	return profile, nil
}

func resolveDoctor(ctx context.Context, s *Service, actor model.Actor, profile *model.UserProfile) error {
	doctor, err := s.doctorRepo.GetByAccountID(ctx, actor.AccountID)
	if err != nil {
		if apperr.IsCode(err, apperr.ErrNotFound) {
			return apperr.ProfileMissing("doctor")
		}
		return err
	}
	profile.DoctorID = &doctor.ID
	profile.Name = doctor.Name
	profile.Specialization = doctor.Specialization
	profile.Availability = doctor.Availability
	profile.Phone = doctor.Phone
	profile.ConsultationFee = &doctor.ConsultationFee
	return nil
}

func resolvePatient(ctx context.Context, s *Service, actor model.Actor, profile *model.UserProfile) error {
	patient, err := s.patientRepo.GetByAccountID(ctx, actor.AccountID)
	if err != nil {
		if apperr.IsCode(err, apperr.ErrNotFound) {
			return apperr.ProfileMissing("patient")
		}
		return err
	}
	profile.PatientID = &patient.ID
	profile.Name = patient.Name
	profile.Age = &patient.Age
	profile.Contact = patient.Contact
	return nil
}

// Admins carry no attached profile.
func resolveAdmin(ctx context.Context, s *Service, actor model.Actor, profile *model.UserProfile) error {
	return nil
}
