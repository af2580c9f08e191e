package model

import "github.com/google/uuid"

type DoctorStatus string

const (
	DoctorStatusPending DoctorStatus = "PENDING"
	DoctorStatusActive  DoctorStatus = "ACTIVE"
)

// Doctor owns exactly one Account via AccountID. A doctor stays
// PENDING until an admin approves the registration; approval also
// activates the linked account.
type Doctor struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	AccountID       uuid.UUID    `db:"account_id" json:"account_id"`
	Name            string       `db:"name" json:"name"`
	Specialization  string       `db:"specialization" json:"specialization"`
	Availability    string       `db:"availability" json:"availability"`
	Phone           string       `db:"phone" json:"phone"`
	ConsultationFee float64      `db:"consultation_fee" json:"consultation_fee"`
	Status          DoctorStatus `db:"status" json:"status"`
}

type UpdateDoctorRequest struct {
	Name            *string  `json:"name"`
	Specialization  *string  `json:"specialization"`
	Availability    *string  `json:"availability"`
	Phone           *string  `json:"phone"`
	ConsultationFee *float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
}
