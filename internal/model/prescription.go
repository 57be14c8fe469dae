package model

import "github.com/google/uuid"

// Prescription references a patient and the prescribing doctor, optionally
// tied to an appointment. CreatedAt is immutable once set.
type Prescription struct {
	Base
	PatientID     uuid.UUID  `json:"patient_id" db:"patient_id"`
	DoctorID      uuid.UUID  `json:"doctor_id" db:"doctor_id"`
	AppointmentID *uuid.UUID `json:"appointment_id" db:"appointment_id"`
	Medication    string     `json:"medication" db:"medication"`
	Dosage        string     `json:"dosage" db:"dosage"`
	Instructions  string     `json:"instructions" db:"instructions"`
	IsActive      bool       `json:"is_active" db:"is_active"`
}

// PrescriptionFilters represents prescription search parameters
type PrescriptionFilters struct {
	PatientID *uuid.UUID `form:"patient_id"`
	DoctorID  *uuid.UUID `form:"doctor_id"`
	IsActive  *bool      `form:"is_active"`
}

// CreatePrescriptionRequest represents prescription creation parameters
type CreatePrescriptionRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" binding:"required"`
	DoctorID      *uuid.UUID `json:"doctor_id"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	Medication    string     `json:"medication" binding:"required"`
	Dosage        string     `json:"dosage" binding:"required,max=100"`
	Instructions  string     `json:"instructions"`
}

// UpdatePrescriptionRequest represents prescription update parameters
type UpdatePrescriptionRequest struct {
	Medication   *string `json:"medication"`
	Dosage       *string `json:"dosage" binding:"omitempty,max=100"`
	Instructions *string `json:"instructions"`
	IsActive     *bool   `json:"is_active"`
}
