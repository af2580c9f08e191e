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

const doctorColumns = `id, account_id, name, specialization, availability, phone, consultation_fee, status`

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE account_id = $1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by account: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors`
	args := []interface{}{}

	if specialization != "" {
		query += ` WHERE specialization ILIKE '%' || $1 || '%'`
		args = append(args, specialization)
	}
	query += ` ORDER BY name ASC`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, specialization = $2, availability = $3, phone = $4, consultation_fee = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		doctor.Name, doctor.Specialization, doctor.Availability,
		doctor.Phone, doctor.ConsultationFee, doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("doctor", nil)
	}
	return nil
}

// Delete removes the doctor profile. Appointment rows are never
// deleted, so a doctor who ever held one is kept; the foreign key
// enforces that and surfaces as a conflict, not an internal fault.
func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if isForeignKeyViolation(err, "appointments_doctor_id_fkey") {
		return apperr.Conflict("doctor has appointment history")
	}
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("doctor", nil)
	}
	return nil
}

// Approve activates the doctor and the linked account in one
// transaction so approval is never half applied.
func (r *doctorRepository) Approve(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1 FOR UPDATE`
		err := tx.GetContext(ctx, &doctor, query, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("doctor", err)
		}
		if err != nil {
			return fmt.Errorf("failed to get doctor: %w", err)
		}

		doctor.Status = model.DoctorStatusActive
		doctor.Availability = "YES"

		if _, err := tx.ExecContext(ctx,
			`UPDATE doctors SET status = $1, availability = $2 WHERE id = $3`,
			doctor.Status, doctor.Availability, doctor.ID,
		); err != nil {
			return fmt.Errorf("failed to approve doctor: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE accounts SET status = $1, updated_at = $2 WHERE id = $3`,
			model.AccountStatusActivated, time.Now(), doctor.AccountID,
		); err != nil {
			return fmt.Errorf("failed to activate doctor account: %w", err)
		}

		return r.CreateOutboxEvent(ctx, tx, model.EventDoctorApproved, &doctor)
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}
