package model

import "github.com/google/uuid"

// Doctor is the role profile owned by exactly one user with role=doctor.
type Doctor struct {
	Base
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	DepartmentID    *uuid.UUID `json:"department_id" db:"department_id"`
	Specialization  string     `json:"specialization" db:"specialization"`
	LicenseNumber   string     `json:"license_number" db:"license_number"`
	YearsExperience int        `json:"years_experience" db:"years_experience"`
	ConsultationFee int64      `json:"consultation_fee" db:"consultation_fee"`
}

// DoctorFilters represents doctor search parameters
type DoctorFilters struct {
	DepartmentID   *uuid.UUID `form:"department_id"`
	Specialization string     `form:"specialization"`
}

// UpdateDoctorRequest represents doctor profile update parameters.
// ConsultationFee is in cents.
type UpdateDoctorRequest struct {
	DepartmentID    *uuid.UUID `json:"department_id"`
	Specialization  *string    `json:"specialization" binding:"omitempty,max=100"`
	LicenseNumber   *string    `json:"license_number" binding:"omitempty,max=50"`
	YearsExperience *int       `json:"years_experience" binding:"omitempty,min=0"`
	ConsultationFee *int64     `json:"consultation_fee" binding:"omitempty,min=0"`
}
