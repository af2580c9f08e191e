package authz_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/teame/hospital-api/internal/authz"
	"github.com/teame/hospital-api/internal/model"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

var (
	adminActor   = model.Actor{AccountID: uuid.New(), Role: model.RoleAdmin}
	ownerAccount = uuid.New()
)

func forbidden(t *testing.T, err error) {
	t.Helper()
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))
}

func TestCanAccessPatient(t *testing.T) {
	patient := &model.Patient{ID: uuid.New(), AccountID: ownerAccount}

	assert.NoError(t, authz.CanAccessPatient(adminActor, patient))
	assert.NoError(t, authz.CanAccessPatient(model.Actor{AccountID: ownerAccount, Role: model.RolePatient}, patient))

	forbidden(t, authz.CanAccessPatient(model.Actor{AccountID: uuid.New(), Role: model.RolePatient}, patient))
	// Role matters even for the matching account.
	forbidden(t, authz.CanAccessPatient(model.Actor{AccountID: ownerAccount, Role: model.RoleDoctor}, patient))
}

func TestCanModifyDoctor(t *testing.T) {
	active := &model.Doctor{ID: uuid.New(), AccountID: ownerAccount, Status: model.DoctorStatusActive}
	pending := &model.Doctor{ID: uuid.New(), AccountID: ownerAccount, Status: model.DoctorStatusPending}
	owner := model.Actor{AccountID: ownerAccount, Role: model.RoleDoctor}

	assert.NoError(t, authz.CanModifyDoctor(adminActor, pending))
	assert.NoError(t, authz.CanModifyDoctor(owner, active))

	// A doctor awaiting approval cannot self-edit.
	forbidden(t, authz.CanModifyDoctor(owner, pending))
	forbidden(t, authz.CanModifyDoctor(model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor}, active))
	forbidden(t, authz.CanModifyDoctor(model.Actor{AccountID: ownerAccount, Role: model.RolePatient}, active))
}

func TestCanApproveDoctor(t *testing.T) {
	assert.NoError(t, authz.CanApproveDoctor(adminActor))
	forbidden(t, authz.CanApproveDoctor(model.Actor{AccountID: ownerAccount, Role: model.RoleDoctor}))
	forbidden(t, authz.CanApproveDoctor(model.Actor{AccountID: ownerAccount, Role: model.RolePatient}))
}

func TestAppointmentPredicates(t *testing.T) {
	doctorAccount := uuid.New()
	patientAccount := uuid.New()
	doctor := &model.Doctor{ID: uuid.New(), AccountID: doctorAccount}
	patient := &model.Patient{ID: uuid.New(), AccountID: patientAccount}

	owningDoctor := model.Actor{AccountID: doctorAccount, Role: model.RoleDoctor}
	owningPatient := model.Actor{AccountID: patientAccount, Role: model.RolePatient}
	strangerDoctor := model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor}
	strangerPatient := model.Actor{AccountID: uuid.New(), Role: model.RolePatient}

	assert.NoError(t, authz.CanDecideAppointment(adminActor, doctor))
	assert.NoError(t, authz.CanDecideAppointment(owningDoctor, doctor))
	forbidden(t, authz.CanDecideAppointment(strangerDoctor, doctor))
	// Patients never decide, not even their own.
	forbidden(t, authz.CanDecideAppointment(owningPatient, doctor))

	assert.NoError(t, authz.CanCancelAppointment(owningPatient, doctor, patient))
	assert.NoError(t, authz.CanCancelAppointment(owningDoctor, doctor, patient))
	forbidden(t, authz.CanCancelAppointment(strangerPatient, doctor, patient))

	assert.NoError(t, authz.CanViewAppointment(owningPatient, doctor, patient))
	forbidden(t, authz.CanViewAppointment(strangerDoctor, doctor, patient))
}

func TestDenialsAreUniform(t *testing.T) {
	patient := &model.Patient{ID: uuid.New(), AccountID: ownerAccount}
	stranger := model.Actor{AccountID: uuid.New(), Role: model.RolePatient}

	a := authz.CanAccessPatient(stranger, patient)
	b := authz.CanApproveDoctor(stranger)
	assert.Equal(t, a.Error(), b.Error(), "every denial reads the same")
}
