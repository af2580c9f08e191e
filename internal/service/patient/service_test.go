package patient_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository/memory"
	"github.com/teame/hospital-api/internal/service/patient"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

var admin = model.Actor{AccountID: uuid.New(), Role: model.RoleAdmin}

func seedPatient(t *testing.T, store *memory.Store) *model.Patient {
	t.Helper()
	p := &model.Patient{Name: "John Doe", Age: 40, Contact: "555-0100"}
	require.NoError(t, store.Accounts().CreateWithPatient(context.Background(), &model.Account{
		Username: "jdoe", Email: "jdoe@example.com", Role: model.RolePatient, Status: model.AccountStatusActivated,
	}, p))
	return p
}

func TestGetOwnRecord(t *testing.T) {
	store := memory.NewStore()
	svc := patient.NewService(store.Patients())
	ctx := context.Background()

	p := seedPatient(t, store)

	got, err := svc.Get(ctx, model.Actor{AccountID: p.AccountID, Role: model.RolePatient}, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)

	got, err = svc.Get(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestGetForeignRecordForbidden(t *testing.T) {
	store := memory.NewStore()
	svc := patient.NewService(store.Patients())
	ctx := context.Background()

	p := seedPatient(t, store)

	_, err := svc.Get(ctx, model.Actor{AccountID: uuid.New(), Role: model.RolePatient}, p.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	// An unknown id denies identically, revealing nothing.
	_, err = svc.Get(ctx, model.Actor{AccountID: uuid.New(), Role: model.RolePatient}, uuid.New())
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	// Only admins can distinguish a missing record.
	_, err = svc.Get(ctx, admin, uuid.New())
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestUpdateIsPartial(t *testing.T) {
	store := memory.NewStore()
	svc := patient.NewService(store.Patients())
	ctx := context.Background()

	p := seedPatient(t, store)
	owner := model.Actor{AccountID: p.AccountID, Role: model.RolePatient}
	age := 41

	updated, err := svc.Update(ctx, owner, p.ID, &model.UpdatePatientRequest{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 41, updated.Age)
	assert.Equal(t, "John Doe", updated.Name)
	assert.Equal(t, "555-0100", updated.Contact)
}

func TestUpdateForeignRecordForbidden(t *testing.T) {
	store := memory.NewStore()
	svc := patient.NewService(store.Patients())
	ctx := context.Background()

	p := seedPatient(t, store)
	name := "Impostor"

	_, err := svc.Update(ctx, model.Actor{AccountID: uuid.New(), Role: model.RolePatient}, p.ID,
		&model.UpdatePatientRequest{Name: &name})
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	got, err := store.Patients().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)
}
