package doctor_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository/memory"
	"github.com/teame/hospital-api/internal/service/doctor"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

func seedDoctor(t *testing.T, store *memory.Store, username string, status model.DoctorStatus) *model.Doctor {
	t.Helper()
	d := &model.Doctor{Name: "Dr. " + username, Specialization: "Cardiology", Availability: "NO", Status: status}
	accountStatus := model.AccountStatusActivated
	if status == model.DoctorStatusPending {
		accountStatus = model.AccountStatusPending
	}
	require.NoError(t, store.Accounts().CreateWithDoctor(context.Background(), &model.Account{
		Username: username, Email: username + "@example.com", Role: model.RoleDoctor, Status: accountStatus,
	}, d))
	return d
}

var admin = model.Actor{AccountID: uuid.New(), Role: model.RoleAdmin}

func TestApproveActivatesDoctorAndAccount(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	d := seedDoctor(t, store, "house", model.DoctorStatusPending)

	approved, err := svc.Approve(ctx, admin, d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DoctorStatusActive, approved.Status)
	assert.Equal(t, "YES", approved.Availability)

	account, err := store.Accounts().Get(ctx, d.AccountID)
	require.NoError(t, err)
	assert.Equal(t, model.AccountStatusActivated, account.Status)
}

func TestApproveIsAdminOnly(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	d := seedDoctor(t, store, "house", model.DoctorStatusPending)

	// Not even the doctor themselves.
	_, err := svc.Approve(ctx, model.Actor{AccountID: d.AccountID, Role: model.RoleDoctor}, d.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))
}

func TestPendingDoctorCannotSelfEdit(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	d := seedDoctor(t, store, "house", model.DoctorStatusPending)
	owner := model.Actor{AccountID: d.AccountID, Role: model.RoleDoctor}
	fee := 200.0

	_, err := svc.Update(ctx, owner, d.ID, &model.UpdateDoctorRequest{ConsultationFee: &fee})
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	_, err = svc.Approve(ctx, admin, d.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, d.ID, &model.UpdateDoctorRequest{ConsultationFee: &fee})
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.ConsultationFee)
}

func TestUpdateIsPartial(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	d := seedDoctor(t, store, "house", model.DoctorStatusActive)
	spec := "Neurology"

	updated, err := svc.Update(ctx, admin, d.ID, &model.UpdateDoctorRequest{Specialization: &spec})
	require.NoError(t, err)
	assert.Equal(t, "Neurology", updated.Specialization)
	assert.Equal(t, d.Name, updated.Name, "unset fields stay untouched")
}

func TestDelete(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	d := seedDoctor(t, store, "house", model.DoctorStatusActive)
	require.NoError(t, svc.Delete(ctx, admin, d.ID))

	_, err := svc.Get(ctx, d.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))

	// The linked account survives the profile deletion.
	_, err = store.Accounts().Get(ctx, d.AccountID)
	assert.NoError(t, err)
}

func TestUnknownDoctorMaskedForStrangers(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	unknown := uuid.New()
	stranger := model.Actor{AccountID: uuid.New(), Role: model.RoleDoctor}

	// A non-admin probing a random id learns nothing.
	err := svc.Delete(ctx, stranger, unknown)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	// Admins get the truth.
	err = svc.Delete(ctx, admin, unknown)
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestListFiltersAndCaches(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	seedDoctor(t, store, "house", model.DoctorStatusActive)
	w := &model.Doctor{Name: "Dr. Wilson", Specialization: "Oncology", Status: model.DoctorStatusActive}
	require.NoError(t, store.Accounts().CreateWithDoctor(ctx, &model.Account{
		Username: "wilson", Email: "wilson@example.com", Role: model.RoleDoctor, Status: model.AccountStatusActivated,
	}, w))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onco, err := svc.List(ctx, "onco")
	require.NoError(t, err)
	require.Len(t, onco, 1)
	assert.Equal(t, "Dr. Wilson", onco[0].Name)

	// A mutation through the service invalidates the cached list.
	require.NoError(t, svc.Delete(ctx, admin, w.ID))
	all, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteDoctorWithHistoryConflicts(t *testing.T) {
	store := memory.NewStore()
	svc := doctor.NewService(store.Doctors())
	ctx := context.Background()

	d := seedDoctor(t, store, "house", model.DoctorStatusActive)
	require.NoError(t, store.Appointments().Create(ctx, &model.Appointment{
		PatientID: uuid.New(),
		DoctorID:  d.ID,
		Date:      "2026-09-10",
		Time:      "10:00",
	}))

	// Appointment rows are never deleted, so the profile stays.
	err := svc.Delete(ctx, admin, d.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrConflict))

	_, err = svc.Get(ctx, d.ID)
	assert.NoError(t, err)
}
