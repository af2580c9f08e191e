package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusApproved  AppointmentStatus = "APPROVED"
	AppointmentStatusRejected  AppointmentStatus = "REJECTED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// CanTransitionTo reports whether the status graph permits moving to
// target. PENDING may move to any terminal state; an APPROVED visit
// may still be cancelled; REJECTED and CANCELLED never change again.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return target == AppointmentStatusApproved ||
			target == AppointmentStatusRejected ||
			target == AppointmentStatusCancelled
	case AppointmentStatusApproved:
		return target == AppointmentStatusCancelled
	}
	return false
}

// Blocking reports whether an appointment in this status occupies its
// slot. Only a cancelled appointment frees the slot for reuse.
func (s AppointmentStatus) Blocking() bool {
	return s != AppointmentStatusCancelled
}

// Appointment records a booking of a doctor's slot by a patient.
// Status is the only mutable field after creation; rows are never
// deleted so the visit history is retained.
type Appointment struct {
	ID        uuid.UUID         `db:"id" json:"id"`
	PatientID uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	Date      string            `db:"date" json:"date"`
	Time      string            `db:"time" json:"time"`
	Symptoms  string            `db:"symptoms" json:"symptoms"`
	Status    AppointmentStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt time.Time         `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string    `json:"time" validate:"required,datetime=15:04"`
	Symptoms  string    `json:"symptoms" validate:"max=1000"`
}
