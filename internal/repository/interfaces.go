package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hms-api/internal/model"
)

// Transactor groups writes into one store transaction. Registration uses
// it to keep the user and profile inserts atomic.
type Transactor interface {
	WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
}

// All repository interfaces in one file
type (
	UserRepository interface {
		CreateTx(ctx context.Context, tx *sqlx.Tx, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		// DeleteCascade removes the user, its role profile, and every row
		// owned by that profile in one transaction.
		DeleteCascade(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	}

	DepartmentRepository interface {
		Create(ctx context.Context, dept *model.Department) error
		Get(ctx context.Context, id uuid.UUID) (*model.Department, error)
		Update(ctx context.Context, dept *model.Department) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Department, error)
		Count(ctx context.Context) (int64, error)
		// CountDependents counts doctors, lab staff and appointments still
		// referencing the department; deletion is rejected while non-zero.
		CountDependents(ctx context.Context, id uuid.UUID) (int64, error)
	}

	DoctorRepository interface {
		CreateTx(ctx context.Context, tx *sqlx.Tx, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error)
		Count(ctx context.Context) (int64, error)
	}

	PatientRepository interface {
		CreateTx(ctx context.Context, tx *sqlx.Tx, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
		GetByPatientID(ctx context.Context, patientID string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
		Count(ctx context.Context) (int64, error)
	}

	LabStaffRepository interface {
		CreateTx(ctx context.Context, tx *sqlx.Tx, staff *model.LabStaff) error
		Get(ctx context.Context, id uuid.UUID) (*model.LabStaff, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.LabStaff, error)
		Update(ctx context.Context, staff *model.LabStaff) error
		List(ctx context.Context) ([]*model.LabStaff, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		Count(ctx context.Context, filters *model.AppointmentFilters) (int64, error)
		// CountRecent counts the n most recently created appointments.
		CountRecent(ctx context.Context, n int) (int64, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		Update(ctx context.Context, prescription *model.Prescription) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PrescriptionFilters) ([]*model.Prescription, error)
		Count(ctx context.Context, filters *model.PrescriptionFilters) (int64, error)
	}

	LabTestRepository interface {
		Create(ctx context.Context, test *model.LabTest) error
		Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error)
		Update(ctx context.Context, test *model.LabTest) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.LabTestFilters) ([]*model.LabTest, error)
		Count(ctx context.Context, filters *model.LabTestFilters) (int64, error)
	}

	BillingRepository interface {
		Create(ctx context.Context, billing *model.Billing) error
		Get(ctx context.Context, id uuid.UUID) (*model.Billing, error)
		Update(ctx context.Context, billing *model.Billing) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.BillingFilters) ([]*model.Billing, error)
		Count(ctx context.Context, filters *model.BillingFilters) (int64, error)
	}

	// TokenRepository tracks issued refresh tokens so logout can revoke
	// them before expiry.
	TokenRepository interface {
		StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
		RefreshTokenValid(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
		RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	}
)
