package model

import (
	"time"

	"github.com/google/uuid"
)

// LabTestStatus values. As with appointments, any authorized writer may
// set any declared status.
type LabTestStatus string

const (
	LabTestStatusPending    LabTestStatus = "pending"
	LabTestStatusInProgress LabTestStatus = "in_progress"
	LabTestStatusCompleted  LabTestStatus = "completed"
	LabTestStatusCancelled  LabTestStatus = "cancelled"
)

type LabTest struct {
	Base
	PatientID  uuid.UUID     `json:"patient_id" db:"patient_id"`
	DoctorID   *uuid.UUID    `json:"doctor_id" db:"doctor_id"`
	LabStaffID *uuid.UUID    `json:"lab_staff_id" db:"lab_staff_id"`
	TestName   string        `json:"test_name" db:"test_name"`
	Description string       `json:"description" db:"description"`
	TestDate   *time.Time    `json:"test_date" db:"test_date"`
	Result     string        `json:"result" db:"result"`
	Status     LabTestStatus `json:"status" db:"status"`
}

// LabTestFilters represents lab test search parameters
type LabTestFilters struct {
	PatientID  *uuid.UUID    `form:"patient_id"`
	DoctorID   *uuid.UUID    `form:"doctor_id"`
	LabStaffID *uuid.UUID    `form:"lab_staff_id"`
	Status     LabTestStatus `form:"status"`
}

// CreateLabTestRequest represents lab test creation parameters
type CreateLabTestRequest struct {
	PatientID   uuid.UUID  `json:"patient_id" binding:"required"`
	TestName    string     `json:"test_name" binding:"required,max=100"`
	Description string     `json:"description"`
	TestDate    *time.Time `json:"test_date"`
}

// UpdateLabTestRequest represents lab test update parameters
type UpdateLabTestRequest struct {
	TestName    *string        `json:"test_name" binding:"omitempty,max=100"`
	Description *string        `json:"description"`
	TestDate    *time.Time     `json:"test_date"`
	Result      *string        `json:"result"`
	Status      *LabTestStatus `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
}
