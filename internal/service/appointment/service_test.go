package appointment_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository/memory"
	"github.com/teame/hospital-api/internal/service/appointment"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

type fixture struct {
	store   *memory.Store
	svc     *appointment.Service
	doctor  *model.Doctor
	patient *model.Patient
	admin   model.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	doctor := &model.Doctor{Name: "Dr. House", Specialization: "Diagnostics", Availability: "YES", Status: model.DoctorStatusActive}
	require.NoError(t, store.Accounts().CreateWithDoctor(ctx, &model.Account{
		Username: "house", Email: "house@example.com", Role: model.RoleDoctor, Status: model.AccountStatusActivated,
	}, doctor))

	patient := &model.Patient{Name: "John Doe", Age: 40, Contact: "555-0100"}
	require.NoError(t, store.Accounts().CreateWithPatient(ctx, &model.Account{
		Username: "jdoe", Email: "jdoe@example.com", Role: model.RolePatient, Status: model.AccountStatusActivated,
	}, patient))

	admin := &model.Account{Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin, Status: model.AccountStatusActivated}
	require.NoError(t, store.Accounts().CreateAdmin(ctx, admin))

	return &fixture{
		store:   store,
		svc:     appointment.NewService(store.Appointments(), store.Doctors(), store.Patients()),
		doctor:  doctor,
		patient: patient,
		admin:   model.Actor{AccountID: admin.ID, Role: model.RoleAdmin},
	}
}

func (f *fixture) patientActor() model.Actor {
	return model.Actor{AccountID: f.patient.AccountID, Role: model.RolePatient}
}

func (f *fixture) doctorActor() model.Actor {
	return model.Actor{AccountID: f.doctor.AccountID, Role: model.RoleDoctor}
}

func (f *fixture) book(t *testing.T, date, tm string) *model.Appointment {
	t.Helper()
	appt, err := f.svc.Book(context.Background(), f.patientActor(), &model.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		Date:      date,
		Time:      tm,
		Symptoms:  "headache",
	})
	require.NoError(t, err)
	return appt
}

func TestBookStartsPending(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, "2026-09-10", "10:00")
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.NotEqual(t, uuid.Nil, appt.ID)
}

func TestBookSlotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "2026-09-10", "10:00")

	_, err := f.svc.Book(ctx, f.patientActor(), &model.CreateAppointmentRequest{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		Date:      "2026-09-10",
		Time:      "10:00",
	})
	assert.True(t, apperr.IsCode(err, apperr.ErrSlotConflict))

	// Same time with a different doctor or date is a different slot.
	f.book(t, "2026-09-10", "10:30")
	f.book(t, "2026-09-11", "10:00")
}

func TestBookUnknownParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, f.admin, &model.CreateAppointmentRequest{
		PatientID: uuid.New(), DoctorID: f.doctor.ID, Date: "2026-09-10", Time: "10:00",
	})
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))

	_, err = f.svc.Book(ctx, f.admin, &model.CreateAppointmentRequest{
		PatientID: f.patient.ID, DoctorID: uuid.New(), Date: "2026-09-10", Time: "10:00",
	})
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestBookForAnotherPatientForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &model.Patient{Name: "Jane Roe", Age: 35}
	require.NoError(t, f.store.Accounts().CreateWithPatient(ctx, &model.Account{
		Username: "jroe", Email: "jroe@example.com", Role: model.RolePatient, Status: model.AccountStatusActivated,
	}, other))

	req := &model.CreateAppointmentRequest{
		PatientID: other.ID, DoctorID: f.doctor.ID, Date: "2026-09-10", Time: "10:00",
	}
	_, err := f.svc.Book(ctx, f.patientActor(), req)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	// Admins may book on anyone's behalf.
	_, err = f.svc.Book(ctx, f.admin, req)
	assert.NoError(t, err)
}

func TestStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, "2026-09-10", "10:00")
	approved, err := f.svc.Approve(ctx, f.doctorActor(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusApproved, approved.Status)

	// APPROVED can only move to CANCELLED.
	_, err = f.svc.Reject(ctx, f.doctorActor(), appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrInvalidTransition))
	_, err = f.svc.Approve(ctx, f.doctorActor(), appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrInvalidTransition))

	cancelled, err := f.svc.Cancel(ctx, f.patientActor(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	// CANCELLED is terminal.
	_, err = f.svc.Cancel(ctx, f.patientActor(), appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrInvalidTransition))
}

func TestRejectedIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, "2026-09-10", "10:00")
	_, err := f.svc.Reject(ctx, f.admin, appt.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.admin, appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrInvalidTransition))
	_, err = f.svc.Cancel(ctx, f.admin, appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrInvalidTransition))
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, "2026-09-10", "10:00")
	_, err := f.svc.Cancel(ctx, f.patientActor(), appt.ID)
	require.NoError(t, err)

	// The slot is bookable again once the holder is cancelled.
	rebooked := f.book(t, "2026-09-10", "10:00")
	assert.NotEqual(t, appt.ID, rebooked.ID)
}

func TestRejectedStillBlocksSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, "2026-09-10", "10:00")
	_, err := f.svc.Reject(ctx, f.doctorActor(), appt.ID)
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, f.patientActor(), &model.CreateAppointmentRequest{
		PatientID: f.patient.ID, DoctorID: f.doctor.ID, Date: "2026-09-10", Time: "10:00",
	})
	assert.True(t, apperr.IsCode(err, apperr.ErrSlotConflict))
}

func TestDecisionAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, "2026-09-10", "10:00")

	// The patient cannot decide their own appointment.
	_, err := f.svc.Approve(ctx, f.patientActor(), appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	// Another doctor cannot decide it either.
	stranger := &model.Doctor{Name: "Dr. Wilson", Specialization: "Oncology", Status: model.DoctorStatusActive}
	require.NoError(t, f.store.Accounts().CreateWithDoctor(ctx, &model.Account{
		Username: "wilson", Email: "wilson@example.com", Role: model.RoleDoctor, Status: model.AccountStatusActivated,
	}, stranger))
	_, err = f.svc.Approve(ctx, model.Actor{AccountID: stranger.AccountID, Role: model.RoleDoctor}, appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	// The owning doctor and admins can.
	_, err = f.svc.Approve(ctx, f.doctorActor(), appt.ID)
	assert.NoError(t, err)
}

func TestCancelAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &model.Patient{Name: "Jane Roe", Age: 35}
	require.NoError(t, f.store.Accounts().CreateWithPatient(ctx, &model.Account{
		Username: "jroe", Email: "jroe@example.com", Role: model.RolePatient, Status: model.AccountStatusActivated,
	}, other))

	appt := f.book(t, "2026-09-10", "10:00")
	_, err := f.svc.Cancel(ctx, model.Actor{AccountID: other.AccountID, Role: model.RolePatient}, appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	_, err = f.svc.Cancel(ctx, f.doctorActor(), appt.ID)
	assert.NoError(t, err)
}

func TestGetVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, "2026-09-10", "10:00")

	for _, actor := range []model.Actor{f.admin, f.doctorActor(), f.patientActor()} {
		got, err := f.svc.Get(ctx, actor, appt.ID)
		require.NoError(t, err)
		assert.Equal(t, appt.ID, got.ID)
	}

	other := &model.Patient{Name: "Jane Roe", Age: 35}
	require.NoError(t, f.store.Accounts().CreateWithPatient(ctx, &model.Account{
		Username: "jroe", Email: "jroe@example.com", Role: model.RolePatient, Status: model.AccountStatusActivated,
	}, other))
	_, err := f.svc.Get(ctx, model.Actor{AccountID: other.AccountID, Role: model.RolePatient}, appt.ID)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	_, err = f.svc.Get(ctx, f.admin, uuid.New())
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestListOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "2026-09-10", "09:00")
	f.book(t, "2026-09-12", "08:00")
	f.book(t, "2026-09-10", "14:00")

	byDoctor, err := f.svc.ListByDoctor(ctx, f.doctor.ID)
	require.NoError(t, err)
	require.Len(t, byDoctor, 3)
	assert.Equal(t, "2026-09-12", byDoctor[0].Date)
	assert.Equal(t, "2026-09-10", byDoctor[1].Date)
	assert.Equal(t, "14:00", byDoctor[1].Time)
	assert.Equal(t, "09:00", byDoctor[2].Time)

	byPatient, err := f.svc.ListByPatient(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.Len(t, byPatient, 3)
}

func TestListUnknownOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListByDoctor(ctx, uuid.New())
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))

	_, err = f.svc.ListByPatient(ctx, uuid.New())
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestBookingRecordsEvent(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2026-09-10", "10:00")

	var seen bool
	for _, ev := range f.store.Events() {
		if ev.EventType == model.EventAppointmentBooked {
			seen = true
		}
	}
	assert.True(t, seen)
}

func TestListAllAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "2026-09-10", "09:00")
	f.book(t, "2026-09-12", "08:00")

	all, err := f.svc.ListAll(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2026-09-12", all[0].Date)
	assert.Equal(t, "2026-09-10", all[1].Date)

	_, err = f.svc.ListAll(ctx, f.doctorActor())
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))
	_, err = f.svc.ListAll(ctx, f.patientActor())
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))
}

func TestUnknownAppointmentMaskedForStrangers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unknown := uuid.New()

	// Probing a random id denies the same way a foreign one does.
	_, err := f.svc.Get(ctx, f.patientActor(), unknown)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))
	_, err = f.svc.Approve(ctx, f.doctorActor(), unknown)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))
	_, err = f.svc.Cancel(ctx, f.patientActor(), unknown)
	assert.True(t, apperr.IsCode(err, apperr.ErrForbidden))

	// Admins see the real condition.
	_, err = f.svc.Get(ctx, f.admin, unknown)
	assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Book(ctx, f.patientActor(), &model.CreateAppointmentRequest{
				PatientID: f.patient.ID,
				DoctorID:  f.doctor.ID,
				Date:      "2026-09-10",
				Time:      "10:00",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case apperr.IsCode(err, apperr.ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one booking may take the slot")
	assert.Equal(t, attempts-1, conflicts)
}
