// Package authz evaluates whether an authenticated actor may perform
// an action on a target entity. Every predicate is a pure function of
// its inputs, and every denial is the same Forbidden error so callers
// learn nothing about the target from a refusal.
package authz

import (
	"github.com/teame/hospital-api/internal/model"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

// CanAccessPatient permits admins and the patient who owns the
// profile. Covers both read and update.
func CanAccessPatient(actor model.Actor, patient *model.Patient) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role == model.RolePatient && patient.AccountID == actor.AccountID {
		return nil
	}
	return apperr.Forbidden()
}

// CanModifyDoctor permits admins, and the owning doctor only once the
// profile is ACTIVE. A PENDING doctor cannot self-edit or self-delete;
// approval has to come first.
func CanModifyDoctor(actor model.Actor, doctor *model.Doctor) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role == model.RoleDoctor &&
		doctor.AccountID == actor.AccountID &&
		doctor.Status == model.DoctorStatusActive {
		return nil
	}
	return apperr.Forbidden()
}

// CanApproveDoctor permits admins only.
func CanApproveDoctor(actor model.Actor) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	return apperr.Forbidden()
}

// CanListAllAppointments permits the ledger-wide listing: admins only.
func CanListAllAppointments(actor model.Actor) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	return apperr.Forbidden()
}

// CanDecideAppointment permits approving or rejecting: admins and the
// doctor the appointment belongs to.
func CanDecideAppointment(actor model.Actor, doctor *model.Doctor) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role == model.RoleDoctor && doctor.AccountID == actor.AccountID {
		return nil
	}
	return apperr.Forbidden()
}

// CanCancelAppointment additionally permits the owning patient.
func CanCancelAppointment(actor model.Actor, doctor *model.Doctor, patient *model.Patient) error {
	if err := CanDecideAppointment(actor, doctor); err == nil {
		return nil
	}
	if actor.Role == model.RolePatient && patient.AccountID == actor.AccountID {
		return nil
	}
	return apperr.Forbidden()
}

// CanViewAppointment permits admins and either participant.
func CanViewAppointment(actor model.Actor, doctor *model.Doctor, patient *model.Patient) error {
	return CanCancelAppointment(actor, doctor, patient)
}
