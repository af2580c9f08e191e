package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/teame/hospital-api/internal/model"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

const appointmentColumns = `id, patient_id, doctor_id, date, time, symptoms, status, created_at, updated_at`

// Create checks the slot and inserts as one atomic unit. Existing slot
// rows are locked FOR UPDATE so two concurrent bookings serialize; the
// partial unique index appointments_slot_idx (doctor_id, date, time
// WHERE status <> 'CANCELLED') backstops the check.
func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		lockQuery := `
			SELECT id FROM appointments
			WHERE doctor_id = $1 AND date = $2 AND time = $3 AND status <> $4
			FOR UPDATE
		`
		var taken []uuid.UUID
		if err := tx.SelectContext(ctx, &taken, lockQuery,
			appt.DoctorID, appt.Date, appt.Time, model.AppointmentStatusCancelled,
		); err != nil {
			return fmt.Errorf("failed to check slot: %w", err)
		}
		if len(taken) > 0 {
			return apperr.SlotConflict()
		}

		insertQuery := `
			INSERT INTO appointments (
				id, patient_id, doctor_id, date, time, symptoms, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		`
		appt.ID = uuid.New()
		appt.Status = model.AppointmentStatusPending
		now := time.Now()
		appt.CreatedAt = now
		appt.UpdatedAt = now

		_, err := tx.ExecContext(ctx, insertQuery,
			appt.ID, appt.PatientID, appt.DoctorID,
			appt.Date, appt.Time, appt.Symptoms, appt.Status, now,
		)
		if isUniqueViolation(err, "appointments_slot_idx") {
			return apperr.SlotConflict()
		}
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return r.CreateOutboxEvent(ctx, tx, model.EventAppointmentBooked, appt)
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appt, nil
}

// UpdateStatus re-reads the row FOR UPDATE and validates the status
// graph inside the transaction, so concurrent mutations of one
// appointment serialize and an illegal edge leaves the row unchanged.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error) {
	var appt model.Appointment

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 FOR UPDATE`
		err := tx.GetContext(ctx, &appt, query, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("appointment", err)
		}
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if !appt.Status.CanTransitionTo(target) {
			return apperr.InvalidTransition(string(appt.Status), string(target))
		}

		from := appt.Status
		appt.Status = target
		appt.UpdatedAt = time.Now()

		updateQuery := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`
		if _, err := tx.ExecContext(ctx, updateQuery, appt.Status, appt.UpdatedAt, appt.ID); err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		return r.CreateOutboxEvent(ctx, tx, model.EventAppointmentStatusMoved, map[string]interface{}{
			"appointment_id": appt.ID,
			"from":           from,
			"to":             target,
		})
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY date DESC, time DESC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY date DESC, time DESC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE patient_id = $1
		ORDER BY date DESC, time DESC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}
