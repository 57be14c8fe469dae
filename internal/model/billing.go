package model

import (
	"time"

	"github.com/google/uuid"
)

// BillingStatus values
type BillingStatus string

const (
	BillingStatusPending   BillingStatus = "pending"
	BillingStatusPaid      BillingStatus = "paid"
	BillingStatusCancelled BillingStatus = "cancelled"
)

// Billing references one patient and optionally the appointment or lab
// test it charges for. AmountCents is fixed-point currency.
type Billing struct {
	Base
	PatientID     uuid.UUID     `json:"patient_id" db:"patient_id"`
	AppointmentID *uuid.UUID    `json:"appointment_id" db:"appointment_id"`
	LabTestID     *uuid.UUID    `json:"lab_test_id" db:"lab_test_id"`
	AmountCents   int64         `json:"amount_cents" db:"amount_cents"`
	Description   string        `json:"description" db:"description"`
	Status        BillingStatus `json:"status" db:"status"`
	IssuedAt      time.Time     `json:"issued_at" db:"issued_at"`
	PaidAt        *time.Time    `json:"paid_at" db:"paid_at"`
}

// BillingFilters represents billing search parameters
type BillingFilters struct {
	PatientID *uuid.UUID    `form:"patient_id"`
	Status    BillingStatus `form:"status"`
}

// CreateBillingRequest represents billing creation parameters
type CreateBillingRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	LabTestID     *uuid.UUID `json:"lab_test_id"`
	AmountCents   int64      `json:"amount_cents" binding:"required,min=0"`
	Description   string     `json:"description"`
}

// UpdateBillingRequest represents billing update parameters
type UpdateBillingRequest struct {
	AmountCents *int64         `json:"amount_cents" binding:"omitempty,min=0"`
	Description *string        `json:"description"`
	Status      *BillingStatus `json:"status" binding:"omitempty,oneof=pending paid cancelled"`
}
