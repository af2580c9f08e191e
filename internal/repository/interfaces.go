package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/teame/hospital-api/internal/model"
)

// All repository interfaces in one file. Implementations must return
// errors from pkg/errors for the conditions named below so services
// and handlers can dispatch on the error code.
type (
	// AccountRepository handles account records plus the atomic
	// account+profile dual writes required at registration. A dangling
	// account without its profile must never be observable.
	AccountRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByUsername(ctx context.Context, username string) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error

		// CreateAdmin inserts a bare account; CreateWithPatient and
		// CreateWithDoctor insert account and profile in one
		// transaction. All three return ErrDuplicateAccount on a
		// username or email collision, including the concurrent case.
		CreateAdmin(ctx context.Context, account *model.Account) error
		CreateWithPatient(ctx context.Context, account *model.Account, patient *model.Patient) error
		CreateWithDoctor(ctx context.Context, account *model.Account, doctor *model.Doctor) error
	}

	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context, specialization string) ([]*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error

		// Approve flips the doctor ACTIVE and the linked account
		// ACTIVATED in one transaction.
		Approve(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	}

	PatientRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Exists(ctx context.Context, id uuid.UUID) (bool, error)
	}

	// AppointmentRepository is the appointment ledger store. Create
	// and UpdateStatus are single atomic units: two concurrent Create
	// calls for one slot cannot both succeed, and UpdateStatus
	// validates the transition against the row it updates.
	AppointmentRepository interface {
		// Create inserts a PENDING appointment iff no non-cancelled
		// appointment occupies (doctor_id, date, time); otherwise it
		// returns ErrSlotConflict.
		Create(ctx context.Context, appt *model.Appointment) error

		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)

		// UpdateStatus moves the appointment to target if the status
		// graph allows it, returning the updated row. Unknown id maps
		// to ErrNotFound, an illegal edge to ErrInvalidTransition.
		UpdateStatus(ctx context.Context, id uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error)

		// ListAll, ListByDoctor and ListByPatient return appointments
		// ordered by date descending then time descending. The
		// ordering is a caller-facing contract.
		ListAll(ctx context.Context) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	}

	OutboxRepository interface {
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error
		DeleteProcessedBefore(ctx context.Context, days int) (int64, error)
	}
)
