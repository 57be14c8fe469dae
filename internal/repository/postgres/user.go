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

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, user *model.User) error {
	query := `
		INSERT INTO users (
			id, username, email, first_name, last_name, phone,
			role, password_hash, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := tx.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Role,
		user.PasswordHash,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM users WHERE username = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			email = $1,
			first_name = $2,
			last_name = $3,
			phone = $4,
			is_active = $5,
			updated_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.IsActive,
		time.Now(),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// Cascade statement lists, one per role, each taking the profile ID as
// $1. Ordered leaf-first: any statement that nulls a reference into a
// table must run before the DELETE that empties it.
var (
	patientCascadeStatements = []string{
		`DELETE FROM billing WHERE patient_id = $1`,
		`DELETE FROM lab_tests WHERE patient_id = $1`,
		`DELETE FROM prescriptions WHERE patient_id = $1`,
		`DELETE FROM appointments WHERE patient_id = $1`,
		`DELETE FROM patients WHERE id = $1`,
	}

	// Billing stays with the patient, so references into the doctor's
	// appointments and lab tests are nulled, not cascaded. Same for
	// prescriptions other doctors issued against this doctor's
	// appointments.
	doctorCascadeStatements = []string{
		`UPDATE departments SET head_doctor_id = NULL WHERE head_doctor_id = $1`,
		`UPDATE billing SET lab_test_id = NULL
			WHERE lab_test_id IN (SELECT id FROM lab_tests WHERE doctor_id = $1)`,
		`UPDATE billing SET appointment_id = NULL
			WHERE appointment_id IN (SELECT id FROM appointments WHERE doctor_id = $1)`,
		`UPDATE prescriptions SET appointment_id = NULL
			WHERE appointment_id IN (SELECT id FROM appointments WHERE doctor_id = $1)`,
		`DELETE FROM lab_tests WHERE doctor_id = $1`,
		`DELETE FROM prescriptions WHERE doctor_id = $1`,
		`DELETE FROM appointments WHERE doctor_id = $1`,
		`DELETE FROM doctors WHERE id = $1`,
	}

	// Lab staff do not own their assigned tests; the tests reference
	// patients, so the assignment is only cleared.
	labStaffCascadeStatements = []string{
		`UPDATE lab_tests SET lab_staff_id = NULL WHERE lab_staff_id = $1`,
		`DELETE FROM lab_staff WHERE id = $1`,
	}
)

// DeleteCascade removes the user and everything its role profile owns. The
// traversal is explicit so the cascade stays auditable: each statement
// names the rows it removes, and the department head back-reference is
// nulled rather than cascaded.
func (r *userRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var role model.Role
		if err := tx.GetContext(ctx, &role, `SELECT role FROM users WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to get user role: %w", err)
		}

		switch role {
		case model.RolePatient:
			var patientID uuid.UUID
			if err := tx.GetContext(ctx, &patientID, `SELECT id FROM patients WHERE user_id = $1`, id); err == nil {
				for _, q := range patientCascadeStatements {
					if _, err := tx.ExecContext(ctx, q, patientID); err != nil {
						return fmt.Errorf("failed to cascade patient rows: %w", err)
					}
				}
			}

		case model.RoleDoctor:
			var doctorID uuid.UUID
			if err := tx.GetContext(ctx, &doctorID, `SELECT id FROM doctors WHERE user_id = $1`, id); err == nil {
				for _, q := range doctorCascadeStatements {
					if _, err := tx.ExecContext(ctx, q, doctorID); err != nil {
						return fmt.Errorf("failed to cascade doctor rows: %w", err)
					}
				}
			}

		case model.RoleLab:
			var staffID uuid.UUID
			if err := tx.GetContext(ctx, &staffID, `SELECT id FROM lab_staff WHERE user_id = $1`, id); err == nil {
				for _, q := range labStaffCascadeStatements {
					if _, err := tx.ExecContext(ctx, q, staffID); err != nil {
						return fmt.Errorf("failed to cascade lab staff rows: %w", err)
					}
				}
			}
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("user not found")
		}
		return nil
	})
}

func (r *userRepository) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	query := `SELECT * FROM users WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.Role != "" {
			query += fmt.Sprintf(" AND role = $%d", len(args)+1)
			args = append(args, filters.Role)
		}
		if filters.IsActive != nil {
			query += fmt.Sprintf(" AND is_active = $%d", len(args)+1)
			args = append(args, *filters.IsActive)
		}
		if filters.Search != "" {
			query += fmt.Sprintf(" AND (username ILIKE $%d OR email ILIKE $%d)", len(args)+1, len(args)+1)
			args = append(args, "%"+filters.Search+"%")
		}
	}

	query += " ORDER BY created_at DESC"

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
