package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, department_id, date, time,
			reason, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.DepartmentID,
		appointment.Date,
		appointment.Time,
		appointment.Reason,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments SET
			date = $1, time = $2, reason = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		appointment.Date,
		appointment.Time,
		appointment.Reason,
		appointment.Status,
		appointment.Notes,
		time.Now(),
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func appointmentFilterClause(filters *model.AppointmentFilters) (string, []interface{}) {
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
	if filters.DepartmentID != nil {
		clause += fmt.Sprintf(" AND department_id = $%d", len(args)+1)
		args = append(args, *filters.DepartmentID)
	}
	if filters.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filters.Status)
	}
	if filters.Date != nil {
		clause += fmt.Sprintf(" AND date = $%d", len(args)+1)
		args = append(args, *filters.Date)
	}
	return clause, args
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	clause, args := appointmentFilterClause(filters)
	query := `SELECT * FROM appointments WHERE 1=1` + clause + ` ORDER BY date DESC, time DESC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Count(ctx context.Context, filters *model.AppointmentFilters) (int64, error) {
	clause, args := appointmentFilterClause(filters)
	query := `SELECT COUNT(*) FROM appointments WHERE 1=1` + clause

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountRecent(ctx context.Context, n int) (int64, error) {
	query := `
		SELECT COUNT(*) FROM (
			SELECT id FROM appointments ORDER BY created_at DESC LIMIT $1
		) recent
	`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, n); err != nil {
		return 0, fmt.Errorf("failed to count recent appointments: %w", err)
	}
	return count, nil
}
