package model

import "github.com/google/uuid"

// LabStaff is the role profile owned by exactly one user with role=lab.
type LabStaff struct {
	Base
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	DepartmentID *uuid.UUID `json:"department_id" db:"department_id"`
}

// UpdateLabStaffRequest represents lab staff profile update parameters
type UpdateLabStaffRequest struct {
	DepartmentID *uuid.UUID `json:"department_id"`
}
