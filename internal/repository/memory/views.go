package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/teame/hospital-api/internal/model"
	"github.com/teame/hospital-api/internal/repository"
)

// Per-entity views over the shared store, one per repository
// interface. The interfaces reuse method names (Get, Update) with
// different entity types, so the store cannot implement them all on
// one receiver.

type accountView struct{ s *Store }
type doctorView struct{ s *Store }
type patientView struct{ s *Store }
type appointmentView struct{ s *Store }

func (s *Store) Accounts() repository.AccountRepository      { return accountView{s} }
func (s *Store) Doctors() repository.DoctorRepository        { return doctorView{s} }
func (s *Store) Patients() repository.PatientRepository      { return patientView{s} }
func (s *Store) Appointments() repository.AppointmentRepository { return appointmentView{s} }

func (v accountView) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return v.s.Get(ctx, id)
}
func (v accountView) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return v.s.GetByUsername(ctx, username)
}
func (v accountView) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return v.s.GetByEmail(ctx, email)
}
func (v accountView) Update(ctx context.Context, account *model.Account) error {
	return v.s.Update(ctx, account)
}
func (v accountView) CreateAdmin(ctx context.Context, account *model.Account) error {
	return v.s.CreateAdmin(ctx, account)
}
func (v accountView) CreateWithPatient(ctx context.Context, account *model.Account, patient *model.Patient) error {
	return v.s.CreateWithPatient(ctx, account, patient)
}
func (v accountView) CreateWithDoctor(ctx context.Context, account *model.Account, doctor *model.Doctor) error {
	return v.s.CreateWithDoctor(ctx, account, doctor)
}

func (v doctorView) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return v.s.GetDoctor(ctx, id)
}
func (v doctorView) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Doctor, error) {
	return v.s.GetDoctorByAccountID(ctx, accountID)
}
func (v doctorView) List(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	return v.s.ListDoctors(ctx, specialization)
}
func (v doctorView) Update(ctx context.Context, doctor *model.Doctor) error {
	return v.s.UpdateDoctor(ctx, doctor)
}
func (v doctorView) Delete(ctx context.Context, id uuid.UUID) error {
	return v.s.DeleteDoctor(ctx, id)
}
func (v doctorView) Approve(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return v.s.ApproveDoctor(ctx, id)
}

func (v patientView) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return v.s.GetPatient(ctx, id)
}
func (v patientView) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Patient, error) {
	return v.s.GetPatientByAccountID(ctx, accountID)
}
func (v patientView) Update(ctx context.Context, patient *model.Patient) error {
	return v.s.UpdatePatient(ctx, patient)
}
func (v patientView) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return v.s.PatientExists(ctx, id)
}

func (v appointmentView) Create(ctx context.Context, appt *model.Appointment) error {
	return v.s.CreateAppointment(ctx, appt)
}
func (v appointmentView) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return v.s.GetAppointment(ctx, id)
}
func (v appointmentView) UpdateStatus(ctx context.Context, id uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error) {
	return v.s.UpdateAppointmentStatus(ctx, id, target)
}
func (v appointmentView) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	return v.s.ListAllAppointments(ctx)
}
func (v appointmentView) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return v.s.ListAppointmentsByDoctor(ctx, doctorID)
}
func (v appointmentView) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return v.s.ListAppointmentsByPatient(ctx, patientID)
}
