package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// scopeFilters narrows the caller-supplied filters by the principal's
// scope. Scoped roles cannot widen past their own profile.
func scopeFilters(scope policy.Scope, filters *model.AppointmentFilters) *model.AppointmentFilters {
	if filters == nil {
		filters = &model.AppointmentFilters{}
	}
	if scope.DoctorID != nil {
		filters.DoctorID = scope.DoctorID
	}
	if scope.PatientID != nil {
		filters.PatientID = scope.PatientID
	}
	return filters
}

func (s *Service) List(ctx context.Context, p policy.Principal, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	scope := policy.ScopeFor(p, policy.ResourceAppointment)
	if scope.Empty {
		// No rule for this role, e.g. lab staff: empty result, not an error.
		return []*model.Appointment{}, nil
	}
	return s.repo.List(ctx, scopeFilters(scope, filters))
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.Appointment, error) {
	scope := policy.ScopeFor(p, policy.ResourceAppointment)
	if scope.Empty {
		return nil, apperrors.NotFound("appointment")
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment")
	}
	if !s.inScope(scope, appointment) {
		return nil, apperrors.NotFound("appointment")
	}
	return appointment, nil
}

// Create books an appointment. Scoped roles are pinned to their own
// profile: a doctor's appointment is always their own, a patient's
// likewise, whatever the request claims.
func (s *Service) Create(ctx context.Context, p policy.Principal, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if !policy.Allows(p, policy.ResourceAppointment, policy.ActionCreate) {
		return nil, apperrors.Permission()
	}

	appointment := &model.Appointment{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		DepartmentID: req.DepartmentID,
		Date:         req.Date,
		Time:         req.Time,
		Reason:       req.Reason,
		Status:       model.AppointmentStatusScheduled,
		Notes:        req.Notes,
	}

	switch p.Role {
	case model.RoleDoctor:
		appointment.DoctorID = *p.DoctorID
	case model.RolePatient:
		appointment.PatientID = *p.PatientID
	}

	if appointment.PatientID == uuid.Nil {
		return nil, apperrors.Validation("patient_id", "patient is required")
	}
	if appointment.DoctorID == uuid.Nil {
		return nil, apperrors.Validation("doctor_id", "doctor is required")
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointment, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if !policy.Allows(p, policy.ResourceAppointment, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment")
	}
	if !s.inScope(policy.ScopeFor(p, policy.ResourceAppointment), appointment) {
		return nil, apperrors.NotFound("appointment")
	}

	if req.Date != nil {
		appointment.Date = *req.Date
	}
	if req.Time != nil {
		appointment.Time = *req.Time
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointment, nil
}

func (s *Service) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	if !policy.Allows(p, policy.ResourceAppointment, policy.ActionDelete) {
		return apperrors.Permission()
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("appointment")
	}
	if !s.inScope(policy.ScopeFor(p, policy.ResourceAppointment), appointment) {
		return apperrors.NotFound("appointment")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) inScope(scope policy.Scope, appointment *model.Appointment) bool {
	switch {
	case scope.Unrestricted:
		return true
	case scope.Empty:
		return false
	case scope.DoctorID != nil:
		return appointment.DoctorID == *scope.DoctorID
	case scope.PatientID != nil:
		return appointment.PatientID == *scope.PatientID
	}
	return false
}
