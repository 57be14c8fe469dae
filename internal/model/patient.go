package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the role profile owned by exactly one user with role=patient.
// PatientID is the human-facing identifier generated at creation and usable
// together with the owner's phone number as a login factor.
type Patient struct {
	Base
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	PatientID      string     `json:"patient_id" db:"patient_id"`
	DateOfBirth    *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender         string     `json:"gender" db:"gender"`
	BloodGroup     string     `json:"blood_group" db:"blood_group"`
	Address        string     `json:"address" db:"address"`
	MedicalHistory string     `json:"medical_history" db:"medical_history"`
}

// PatientFilters represents patient search parameters
type PatientFilters struct {
	BloodGroup string `form:"blood_group"`
	Search     string `form:"search"`
}

// UpdatePatientRequest represents patient profile update parameters.
// PatientID is immutable and deliberately absent.
type UpdatePatientRequest struct {
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	BloodGroup     *string    `json:"blood_group" binding:"omitempty,max=5"`
	Address        *string    `json:"address"`
	MedicalHistory *string    `json:"medical_history"`
}
