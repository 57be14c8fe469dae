package model

import "github.com/google/uuid"

// Department groups doctors and lab staff. HeadDoctorID is a non-owning
// back-reference: deleting that doctor nulls the field, never the department.
type Department struct {
	Base
	Name         string     `json:"name" db:"name"`
	Description  string     `json:"description" db:"description"`
	HeadDoctorID *uuid.UUID `json:"head_doctor_id" db:"head_doctor_id"`
}

// CreateDepartmentRequest represents department creation parameters
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateDepartmentRequest represents department update parameters
type UpdateDepartmentRequest struct {
	Name         *string    `json:"name" binding:"omitempty,max=100"`
	Description  *string    `json:"description"`
	HeadDoctorID *uuid.UUID `json:"head_doctor_id"`
}
