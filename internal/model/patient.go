package model

import "github.com/google/uuid"

// Patient owns exactly one Account via AccountID.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AccountID uuid.UUID `db:"account_id" json:"account_id"`
	Name      string    `db:"name" json:"name"`
	Age       int       `db:"age" json:"age"`
	Contact   string    `db:"contact" json:"contact"`
}

type UpdatePatientRequest struct {
	Name    *string `json:"name"`
	Age     *int    `json:"age" validate:"omitempty,gte=0"`
	Contact *string `json:"contact"`
}
