package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
)

type labStaffRepository struct {
	BaseRepository
}

func NewLabStaffRepository(base BaseRepository) repository.LabStaffRepository {
	return &labStaffRepository{base}
}

func (r *labStaffRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, staff *model.LabStaff) error {
	query := `
		INSERT INTO lab_staff (id, user_id, department_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	_, err := tx.ExecContext(ctx, query,
		staff.ID,
		staff.UserID,
		staff.DepartmentID,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lab staff: %w", err)
	}
	return nil
}

func (r *labStaffRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabStaff, error) {
	query := `SELECT * FROM lab_staff WHERE id = $1`

	var staff model.LabStaff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, fmt.Errorf("failed to get lab staff: %w", err)
	}
	return &staff, nil
}

func (r *labStaffRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.LabStaff, error) {
	query := `SELECT * FROM lab_staff WHERE user_id = $1`

	var staff model.LabStaff
	if err := r.db.GetContext(ctx, &staff, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get lab staff by user: %w", err)
	}
	return &staff, nil
}

func (r *labStaffRepository) Update(ctx context.Context, staff *model.LabStaff) error {
	query := `UPDATE lab_staff SET department_id = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, staff.DepartmentID, time.Now(), staff.ID)
	if err != nil {
		return fmt.Errorf("failed to update lab staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lab staff not found")
	}
	return nil
}

func (r *labStaffRepository) List(ctx context.Context) ([]*model.LabStaff, error) {
	query := `SELECT * FROM lab_staff ORDER BY created_at DESC`

	var staff []*model.LabStaff
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("failed to list lab staff: %w", err)
	}
	return staff, nil
}
