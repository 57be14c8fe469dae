package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
)

type billingRepository struct {
	BaseRepository
}

func NewBillingRepository(base BaseRepository) repository.BillingRepository {
	return &billingRepository{base}
}

func (r *billingRepository) Create(ctx context.Context, billing *model.Billing) error {
	query := `
		INSERT INTO billing (
			id, patient_id, appointment_id, lab_test_id, amount_cents,
			description, status, issued_at, paid_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	billing.ID = uuid.New()
	billing.CreatedAt = time.Now()
	billing.UpdatedAt = billing.CreatedAt
	if billing.IssuedAt.IsZero() {
		billing.IssuedAt = billing.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, query,
		billing.ID,
		billing.PatientID,
		billing.AppointmentID,
		billing.LabTestID,
		billing.AmountCents,
		billing.Description,
		billing.Status,
		billing.IssuedAt,
		billing.PaidAt,
		billing.CreatedAt,
		billing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create billing record: %w", err)
	}
	return nil
}

func (r *billingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Billing, error) {
	query := `SELECT * FROM billing WHERE id = $1`

	var billing model.Billing
	if err := r.db.GetContext(ctx, &billing, query, id); err != nil {
		return nil, fmt.Errorf("failed to get billing record: %w", err)
	}
	return &billing, nil
}

func (r *billingRepository) Update(ctx context.Context, billing *model.Billing) error {
	query := `
		UPDATE billing SET
			amount_cents = $1, description = $2, status = $3, paid_at = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		billing.AmountCents,
		billing.Description,
		billing.Status,
		billing.PaidAt,
		time.Now(),
		billing.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update billing record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("billing record not found")
	}
	return nil
}

func (r *billingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM billing WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete billing record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("billing record not found")
	}
	return nil
}

func billingFilterClause(filters *model.BillingFilters) (string, []interface{}) {
	clause := ""
	args := []interface{}{}

	if filters == nil {
		return clause, args
	}
	if filters.PatientID != nil {
		clause += fmt.Sprintf(" AND patient_id = $%d", len(args)+1)
		args = append(args, *filters.PatientID)
	}
	if filters.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filters.Status)
	}
	return clause, args
}

func (r *billingRepository) List(ctx context.Context, filters *model.BillingFilters) ([]*model.Billing, error) {
	clause, args := billingFilterClause(filters)
	query := `SELECT * FROM billing WHERE 1=1` + clause + ` ORDER BY issued_at DESC`

	var records []*model.Billing
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list billing records: %w", err)
	}
	return records, nil
}

func (r *billingRepository) Count(ctx context.Context, filters *model.BillingFilters) (int64, error) {
	clause, args := billingFilterClause(filters)
	query := `SELECT COUNT(*) FROM billing WHERE 1=1` + clause

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count billing records: %w", err)
	}
	return count, nil
}
