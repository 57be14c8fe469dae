package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus values. No transition rules are enforced: any
// authorized writer may set any declared status.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

type Appointment struct {
	Base
	PatientID    uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID     uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	DepartmentID uuid.UUID         `json:"department_id" db:"department_id"`
	Date         time.Time         `json:"date" db:"date"`
	Time         string            `json:"time" db:"time"`
	Reason       string            `json:"reason" db:"reason"`
	Status       AppointmentStatus `json:"status" db:"status"`
	Notes        string            `json:"notes" db:"notes"`
}

// AppointmentFilters represents appointment search parameters
type AppointmentFilters struct {
	PatientID    *uuid.UUID        `form:"patient_id"`
	DoctorID     *uuid.UUID        `form:"doctor_id"`
	DepartmentID *uuid.UUID        `form:"department_id"`
	Status       AppointmentStatus `form:"status"`
	Date         *time.Time        `form:"date" time_format:"2006-01-02"`
}

// CreateAppointmentRequest represents appointment creation parameters
type CreateAppointmentRequest struct {
	PatientID    uuid.UUID `json:"patient_id"`
	DoctorID     uuid.UUID `json:"doctor_id"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	Date         time.Time `json:"date" binding:"required" time_format:"2006-01-02"`
	Time         string    `json:"time" binding:"required"`
	Reason       string    `json:"reason"`
	Notes        string    `json:"notes"`
}

// UpdateAppointmentRequest represents appointment update parameters
type UpdateAppointmentRequest struct {
	Date   *time.Time         `json:"date" time_format:"2006-01-02"`
	Time   *string            `json:"time"`
	Reason *string            `json:"reason"`
	Status *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled no_show"`
	Notes  *string            `json:"notes"`
}
