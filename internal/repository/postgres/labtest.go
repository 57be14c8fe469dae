package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
)

type labTestRepository struct {
	BaseRepository
}

func NewLabTestRepository(base BaseRepository) repository.LabTestRepository {
	return &labTestRepository{base}
}

func (r *labTestRepository) Create(ctx context.Context, test *model.LabTest) error {
	query := `
		INSERT INTO lab_tests (
			id, patient_id, doctor_id, lab_staff_id, test_name,
			description, test_date, result, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	test.ID = uuid.New()
	test.CreatedAt = time.Now()
	test.UpdatedAt = test.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		test.ID,
		test.PatientID,
		test.DoctorID,
		test.LabStaffID,
		test.TestName,
		test.Description,
		test.TestDate,
		test.Result,
		test.Status,
		test.CreatedAt,
		test.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}
	return nil
}

func (r *labTestRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	query := `SELECT * FROM lab_tests WHERE id = $1`

	var test model.LabTest
	if err := r.db.GetContext(ctx, &test, query, id); err != nil {
		return nil, fmt.Errorf("failed to get lab test: %w", err)
	}
	return &test, nil
}

func (r *labTestRepository) Update(ctx context.Context, test *model.LabTest) error {
	query := `
		UPDATE lab_tests SET
			test_name = $1, description = $2, test_date = $3,
			result = $4, status = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		test.TestName,
		test.Description,
		test.TestDate,
		test.Result,
		test.Status,
		time.Now(),
		test.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lab test: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lab test not found")
	}
	return nil
}

func (r *labTestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lab_tests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lab test: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lab test not found")
	}
	return nil
}

func labTestFilterClause(filters *model.LabTestFilters) (string, []interface{}) {
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
	if filters.LabStaffID != nil {
		clause += fmt.Sprintf(" AND lab_staff_id = $%d", len(args)+1)
		args = append(args, *filters.LabStaffID)
	}
	if filters.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filters.Status)
	}
	return clause, args
}

func (r *labTestRepository) List(ctx context.Context, filters *model.LabTestFilters) ([]*model.LabTest, error) {
	clause, args := labTestFilterClause(filters)
	query := `SELECT * FROM lab_tests WHERE 1=1` + clause + ` ORDER BY created_at DESC`

	var tests []*model.LabTest
	if err := r.db.SelectContext(ctx, &tests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", err)
	}
	return tests, nil
}

func (r *labTestRepository) Count(ctx context.Context, filters *model.LabTestFilters) (int64, error) {
	clause, args := labTestFilterClause(filters)
	query := `SELECT COUNT(*) FROM lab_tests WHERE 1=1` + clause

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count lab tests: %w", err)
	}
	return count, nil
}
