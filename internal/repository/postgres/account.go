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

const accountColumns = `id, username, email, password_hash, role, status, created_at, updated_at`

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var account model.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("account", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(username) = lower($1)`

	var account model.Account
	err := r.db.GetContext(ctx, &account, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("account", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`

	var account model.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("account", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	account.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, account.Status, account.UpdatedAt, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("account", nil)
	}
	return nil
}

func (r *accountRepository) CreateAdmin(ctx context.Context, account *model.Account) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}
		return r.CreateOutboxEvent(ctx, tx, model.EventAccountRegistered, account)
	})
}

func (r *accountRepository) CreateWithPatient(ctx context.Context, account *model.Account, patient *model.Patient) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}

		query := `
			INSERT INTO patients (id, account_id, name, age, contact)
			VALUES ($1, $2, $3, $4, $5)
		`
		patient.ID = uuid.New()
		patient.AccountID = account.ID
		if _, err := tx.ExecContext(ctx, query,
			patient.ID, patient.AccountID, patient.Name, patient.Age, patient.Contact,
		); err != nil {
			return fmt.Errorf("failed to create patient profile: %w", err)
		}

		return r.CreateOutboxEvent(ctx, tx, model.EventAccountRegistered, account)
	})
}

func (r *accountRepository) CreateWithDoctor(ctx context.Context, account *model.Account, doctor *model.Doctor) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}

		query := `
			INSERT INTO doctors (
				id, account_id, name, specialization, availability,
				phone, consultation_fee, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		doctor.ID = uuid.New()
		doctor.AccountID = account.ID
		if _, err := tx.ExecContext(ctx, query,
			doctor.ID, doctor.AccountID, doctor.Name, doctor.Specialization,
			doctor.Availability, doctor.Phone, doctor.ConsultationFee, doctor.Status,
		); err != nil {
			return fmt.Errorf("failed to create doctor profile: %w", err)
		}

		return r.CreateOutboxEvent(ctx, tx, model.EventAccountRegistered, account)
	})
}

// insertAccount maps unique-index violations on the lower(username) and
// lower(email) indexes to ErrDuplicateAccount, which settles the race
// between two concurrent registrations for the same name.
func insertAccount(ctx context.Context, tx *sqlx.Tx, account *model.Account) error {
	query := `
		INSERT INTO accounts (
			id, username, email, password_hash, role, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`
	account.ID = uuid.New()
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := tx.ExecContext(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash,
		account.Role, account.Status, now,
	)
	if isUniqueViolation(err, "accounts_username_lower_idx") {
		return apperr.DuplicateAccount("username")
	}
	if isUniqueViolation(err, "accounts_email_lower_idx") {
		return apperr.DuplicateAccount("email")
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}
