package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
)

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(base BaseRepository) repository.PrescriptionRepository {
	return &prescriptionRepository{base}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, patient_id, doctor_id, appointment_id, medication,
			dosage, instructions, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	prescription.ID = uuid.New()
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = prescription.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		prescription.ID,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.AppointmentID,
		prescription.Medication,
		prescription.Dosage,
		prescription.Instructions,
		prescription.IsActive,
		prescription.CreatedAt,
		prescription.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE id = $1`

	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

// Update leaves created_at untouched: the prescription timestamp is
// immutable once set.
func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	query := `
		UPDATE prescriptions SET
			medication = $1, dosage = $2, instructions = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		prescription.Medication,
		prescription.Dosage,
		prescription.Instructions,
		prescription.IsActive,
		time.Now(),
		prescription.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("prescription not found")
	}
	return nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("prescription not found")
	}
	return nil
}

func prescriptionFilterClause(filters *model.PrescriptionFilters) (string, []interface{}) {
	clause := ""
	args := []interface{}{}

	if filters == nil {
		return clause, args
	}
	if filters.PatientID != nil {
		clause += fmt.Sprintf(" AND patient_id = $%d", len(args)+1)
		args = append(args, *filters.PatientID)
	}
	if filters.DoctorID != nil {
		clause += fmt.Sprintf(" AND doctor_id = $%d", len(args)+1)
		args = append(args, *filters.DoctorID)
	}
	if filters.IsActive != nil {
		clause += fmt.Sprintf(" AND is_active = $%d", len(args)+1)
		args = append(args, *filters.IsActive)
	}
	return clause, args
}

func (r *prescriptionRepository) List(ctx context.Context, filters *model.PrescriptionFilters) ([]*model.Prescription, error) {
	clause, args := prescriptionFilterClause(filters)
	query := `SELECT * FROM prescriptions WHERE 1=1` + clause + ` ORDER BY created_at DESC`

	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Count(ctx context.Context, filters *model.PrescriptionFilters) (int64, error) {
	clause, args := prescriptionFilterClause(filters)
	query := `SELECT COUNT(*) FROM prescriptions WHERE 1=1` + clause

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}
	return count, nil
}
