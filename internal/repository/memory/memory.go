// Package memory implements the repository interfaces on an in-memory
// store with a single mutex standing in for the database transaction
// boundary. It backs the service-level tests.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teame/hospital-api/internal/model"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

type Store struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]*model.Account
	doctors      map[uuid.UUID]*model.Doctor
	patients     map[uuid.UUID]*model.Patient
	appointments map[uuid.UUID]*model.Appointment
	events       []*model.OutboxEvent
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]*model.Account),
		doctors:      make(map[uuid.UUID]*model.Doctor),
		patients:     make(map[uuid.UUID]*model.Patient),
		appointments: make(map[uuid.UUID]*model.Appointment),
	}
}

// Events returns a snapshot of recorded outbox events.
func (s *Store) Events() []*model.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.OutboxEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) recordEvent(eventType string, payload interface{}) {
	raw, _ := json.Marshal(payload)
	s.events = append(s.events, &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   raw,
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
}

// --- AccountRepository ---

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, apperr.NotFound("account", nil)
	}
	cp := *account
	return &cp, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if strings.EqualFold(account.Username, username) {
			cp := *account
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("account", nil)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, email) {
			cp := *account
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("account", nil)
}

func (s *Store) Update(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.accounts[account.ID]
	if !ok {
		return apperr.NotFound("account", nil)
	}
	existing.Status = account.Status
	existing.UpdatedAt = time.Now()
	return nil
}

func (s *Store) CreateAdmin(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertAccountLocked(account); err != nil {
		return err
	}
	s.recordEvent(model.EventAccountRegistered, account)
	return nil
}

func (s *Store) CreateWithPatient(ctx context.Context, account *model.Account, patient *model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertAccountLocked(account); err != nil {
		return err
	}
	patient.ID = uuid.New()
	patient.AccountID = account.ID
	cp := *patient
	s.patients[patient.ID] = &cp
	s.recordEvent(model.EventAccountRegistered, account)
	return nil
}

func (s *Store) CreateWithDoctor(ctx context.Context, account *model.Account, doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.insertAccountLocked(account); err != nil {
		return err
	}
	doctor.ID = uuid.New()
	doctor.AccountID = account.ID
	cp := *doctor
	s.doctors[doctor.ID] = &cp
	s.recordEvent(model.EventAccountRegistered, account)
	return nil
}

func (s *Store) insertAccountLocked(account *model.Account) error {
	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Username, account.Username) {
			return apperr.DuplicateAccount("username")
		}
		if strings.EqualFold(existing.Email, account.Email) {
			return apperr.DuplicateAccount("email")
		}
	}
	account.ID = uuid.New()
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	cp := *account
	s.accounts[account.ID] = &cp
	return nil
}

// --- DoctorRepository ---

func (s *Store) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doctor, ok := s.doctors[id]
	if !ok {
		return nil, apperr.NotFound("doctor", nil)
	}
	cp := *doctor
	return &cp, nil
}

func (s *Store) GetDoctorByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doctor := range s.doctors {
		if doctor.AccountID == accountID {
			cp := *doctor
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("doctor", nil)
}

func (s *Store) ListDoctors(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Doctor
	for _, doctor := range s.doctors {
		if specialization != "" && !strings.Contains(
			strings.ToLower(doctor.Specialization), strings.ToLower(specialization)) {
			continue
		}
		cp := *doctor
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateDoctor(ctx context.Context, doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[doctor.ID]; !ok {
		return apperr.NotFound("doctor", nil)
	}
	cp := *doctor
	s.doctors[doctor.ID] = &cp
	return nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[id]; !ok {
		return apperr.NotFound("doctor", nil)
	}
	for _, appt := range s.appointments {
		if appt.DoctorID == id {
			return apperr.Conflict("doctor has appointment history")
		}
	}
	delete(s.doctors, id)
	return nil
}

func (s *Store) ApproveDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doctor, ok := s.doctors[id]
	if !ok {
		return nil, apperr.NotFound("doctor", nil)
	}
	doctor.Status = model.DoctorStatusActive
	doctor.Availability = "YES"
	if account, ok := s.accounts[doctor.AccountID]; ok {
		account.Status = model.AccountStatusActivated
		account.UpdatedAt = time.Now()
	}
	s.recordEvent(model.EventDoctorApproved, doctor)
	cp := *doctor
	return &cp, nil
}

// --- PatientRepository ---

func (s *Store) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patient, ok := s.patients[id]
	if !ok {
		return nil, apperr.NotFound("patient", nil)
	}
	cp := *patient
	return &cp, nil
}

func (s *Store) GetPatientByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, patient := range s.patients {
		if patient.AccountID == accountID {
			cp := *patient
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("patient", nil)
}

func (s *Store) UpdatePatient(ctx context.Context, patient *model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[patient.ID]; !ok {
		return apperr.NotFound("patient", nil)
	}
	cp := *patient
	s.patients[patient.ID] = &cp
	return nil
}

func (s *Store) PatientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.patients[id]
	return ok, nil
}

// --- AppointmentRepository ---

func (s *Store) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.appointments {
		if existing.DoctorID == appt.DoctorID &&
			existing.Date == appt.Date &&
			existing.Time == appt.Time &&
			existing.Status.Blocking() {
			return apperr.SlotConflict()
		}
	}
	appt.ID = uuid.New()
	appt.Status = model.AppointmentStatusPending
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	cp := *appt
	s.appointments[appt.ID] = &cp
	s.recordEvent(model.EventAppointmentBooked, appt)
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment", nil)
	}
	cp := *appt
	return &cp, nil
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment", nil)
	}
	if !appt.Status.CanTransitionTo(target) {
		return nil, apperr.InvalidTransition(string(appt.Status), string(target))
	}
	from := appt.Status
	appt.Status = target
	appt.UpdatedAt = time.Now()
	s.recordEvent(model.EventAppointmentStatusMoved, map[string]interface{}{
		"appointment_id": appt.ID,
		"from":           from,
		"to":             target,
	})
	cp := *appt
	return &cp, nil
}

func (s *Store) ListAllAppointments(ctx context.Context) ([]*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Appointment, 0, len(s.appointments))
	for _, appt := range s.appointments {
		cp := *appt
		out = append(out, &cp)
	}
	sortAppointments(out)
	return out, nil
}

func (s *Store) ListAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Appointment
	for _, appt := range s.appointments {
		if appt.DoctorID == doctorID {
			cp := *appt
			out = append(out, &cp)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (s *Store) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Appointment
	for _, appt := range s.appointments {
		if appt.PatientID == patientID {
			cp := *appt
			out = append(out, &cp)
		}
	}
	sortAppointments(out)
	return out, nil
}

// Most recent first: date descending, then time descending.
func sortAppointments(appts []*model.Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date > appts[j].Date
		}
		return appts[i].Time > appts[j].Time
	})
}
