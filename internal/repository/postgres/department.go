package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
)

type departmentRepository struct {
	BaseRepository
}

func NewDepartmentRepository(base BaseRepository) repository.DepartmentRepository {
	return &departmentRepository{base}
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	query := `
		INSERT INTO departments (id, name, description, head_doctor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	dept.ID = uuid.New()
	dept.CreatedAt = time.Now()
	dept.UpdatedAt = dept.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		dept.ID,
		dept.Name,
		dept.Description,
		dept.HeadDoctorID,
		dept.CreatedAt,
		dept.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	query := `SELECT * FROM departments WHERE id = $1`

	var dept model.Department
	if err := r.db.GetContext(ctx, &dept, query, id); err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &dept, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) error {
	query := `
		UPDATE departments SET
			name = $1, description = $2, head_doctor_id = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		dept.Name, dept.Description, dept.HeadDoctorID, time.Now(), dept.ID)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("department not found")
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("department not found")
	}
	return nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	query := `SELECT * FROM departments ORDER BY name`

	var depts []*model.Department
	if err := r.db.SelectContext(ctx, &depts, query); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM departments`); err != nil {
		return 0, fmt.Errorf("failed to count departments: %w", err)
	}
	return count, nil
}

func (r *departmentRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM doctors WHERE department_id = $1) +
			(SELECT COUNT(*) FROM lab_staff WHERE department_id = $1) +
			(SELECT COUNT(*) FROM appointments WHERE department_id = $1)
	`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("failed to count department dependents: %w", err)
	}
	return count, nil
}
