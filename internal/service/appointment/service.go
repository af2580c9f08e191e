// Package appointment implements the appointment ledger: booking with
// slot-conflict resolution and the status lifecycle.
package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/teame/hospital-api/internal/authz"
	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

type Service struct {
	repo        repository.AppointmentRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.AppointmentRepository, doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository) *Service {
	return &Service{
		repo:        repo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

// Book creates a PENDING appointment for the requested slot. Booking
// is the only construction path, so every appointment starts PENDING.
// The slot check and insert happen as one atomic unit in the store.
func (s *Service) Book(ctx context.Context, actor model.Actor, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.doctorRepo.Get(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	// Booking on someone else's behalf is an admin action.
	if actor.Role != model.RoleAdmin && patient.AccountID != actor.AccountID {
		return nil, apperr.Forbidden()
	}

	appt := &model.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Symptoms:  req.Symptoms,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	doctor, patient := s.participants(ctx, appt)
	if err := authz.CanViewAppointment(actor, doctor, patient); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListAll returns the whole ledger, most recent first. Admin only.
func (s *Service) ListAll(ctx context.Context, actor model.Actor) ([]*model.Appointment, error) {
	if err := authz.CanListAllAppointments(actor); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// Approve moves a PENDING appointment to APPROVED.
func (s *Service) Approve(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	return s.decide(ctx, actor, id, model.AppointmentStatusApproved)
}

// Reject moves a PENDING appointment to REJECTED.
func (s *Service) Reject(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	return s.decide(ctx, actor, id, model.AppointmentStatusRejected)
}

func (s *Service) decide(ctx context.Context, actor model.Actor, id uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error) {
	appt, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	doctor, _ := s.participants(ctx, appt)
	if err := authz.CanDecideAppointment(actor, doctor); err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, id, target)
}

// Cancel moves a PENDING or APPROVED appointment to CANCELLED, which
// frees the slot for a new booking.
func (s *Service) Cancel(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	doctor, patient := s.participants(ctx, appt)
	if err := authz.CanCancelAppointment(actor, doctor, patient); err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled)
}

// ListByDoctor returns the doctor's appointments, most recent first.
func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	if _, err := s.doctorRepo.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, doctorID)
}

// ListByPatient returns the patient's appointments, most recent first.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	exists, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("patient", nil)
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// fetch loads the appointment, masking NotFound as Forbidden for
// callers the guard would have denied anyway, so a denial never
// confirms whether the id exists.
func (s *Service) fetch(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperr.IsCode(err, apperr.ErrNotFound) {
			if aerr := authz.CanViewAppointment(actor, &model.Doctor{}, &model.Patient{}); aerr != nil {
				return nil, aerr
			}
		}
		return nil, err
	}
	return appt, nil
}

// participants resolves the appointment's doctor and patient for the
// authorization check. A participant that cannot be resolved maps to
// an empty record, which never matches a non-admin actor.
func (s *Service) participants(ctx context.Context, appt *model.Appointment) (*model.Doctor, *model.Patient) {
	doctor, err := s.doctorRepo.Get(ctx, appt.DoctorID)
	if err != nil {
		doctor = &model.Doctor{}
	}
	patient, err := s.patientRepo.Get(ctx, appt.PatientID)
	if err != nil {
		patient = &model.Patient{}
	}
	return doctor, patient
}
