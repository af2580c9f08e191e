package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountStatusPending     AccountStatus = "PENDING"
	AccountStatusActivated   AccountStatus = "ACTIVATED"
	AccountStatusDeactivated AccountStatus = "DEACTIVATED"
	AccountStatusBlocked     AccountStatus = "BLOCKED"
)

// Account is the credential record behind every role. Accounts are
// never physically deleted; deactivation and blocking are status
// changes only.
type Account struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	Username     string        `db:"username" json:"username"`
	Email        string        `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         Role          `db:"role" json:"role"`
	Status       AccountStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// Actor identifies an authenticated account for authorization checks.
type Actor struct {
	AccountID uuid.UUID
	Role      Role
}
