package model

import "github.com/google/uuid"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=ADMIN DOCTOR PATIENT"`

	// Patient fields
	Name    string `json:"name"`
	Age     int    `json:"age" validate:"gte=0"`
	Contact string `json:"contact"`

	// Doctor fields
	Specialization  string  `json:"specialization"`
	Phone           string  `json:"phone"`
	ConsultationFee float64 `json:"consultation_fee" validate:"gte=0"`
}

type AuthResponse struct {
	Token    string        `json:"token,omitempty"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     Role          `json:"role"`
	Status   AccountStatus `json:"status"`
	Message  string        `json:"message"`
}

// UserProfile is the role-specific view of an authenticated account.
type UserProfile struct {
	AccountID uuid.UUID     `json:"account_id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status"`

	DoctorID        *uuid.UUID `json:"doctor_id,omitempty"`
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	Name            string     `json:"name,omitempty"`
	Age             *int       `json:"age,omitempty"`
	Contact         string     `json:"contact,omitempty"`
	Specialization  string     `json:"specialization,omitempty"`
	Availability    string     `json:"availability,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	ConsultationFee *float64   `json:"consultation_fee,omitempty"`
}
