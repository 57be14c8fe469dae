package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.PrescriptionRepository
}

func NewService(repo repository.PrescriptionRepository) *Service {
	return &Service{repo: repo}
}

func scopeFilters(scope policy.Scope, filters *model.PrescriptionFilters) *model.PrescriptionFilters {
	if filters == nil {
		filters = &model.PrescriptionFilters{}
	}
	if scope.DoctorID != nil {
		filters.DoctorID = scope.DoctorID
	}
	if scope.PatientID != nil {
		filters.PatientID = scope.PatientID
	}
	return filters
}

func (s *Service) List(ctx context.Context, p policy.Principal, filters *model.PrescriptionFilters) ([]*model.Prescription, error) {
	scope := policy.ScopeFor(p, policy.ResourcePrescription)
	if scope.Empty {
		return []*model.Prescription{}, nil
	}
	return s.repo.List(ctx, scopeFilters(scope, filters))
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.Prescription, error) {
	scope := policy.ScopeFor(p, policy.ResourcePrescription)
	if scope.Empty {
		return nil, apperrors.NotFound("prescription")
	}

	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("prescription")
	}
	if !inScope(scope, prescription) {
		return nil, apperrors.NotFound("prescription")
	}
	return prescription, nil
}

// Create issues a prescription. Only doctors and admin may write; a
// doctor's prescription always carries their own profile reference.
func (s *Service) Create(ctx context.Context, p policy.Principal, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if !policy.Allows(p, policy.ResourcePrescription, policy.ActionCreate) {
		return nil, apperrors.Permission()
	}

	prescription := &model.Prescription{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		Instructions:  req.Instructions,
		IsActive:      true,
	}

	if req.DoctorID != nil {
		prescription.DoctorID = *req.DoctorID
	}
	if p.Role == model.RoleDoctor {
		// A doctor prescribes under their own profile regardless of the request.
		prescription.DoctorID = *p.DoctorID
	}
	if prescription.DoctorID == uuid.Nil {
		return nil, apperrors.Validation("doctor_id", "doctor is required")
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, apperrors.Internal(err)
	}
	return prescription, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	if !policy.Allows(p, policy.ResourcePrescription, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("prescription")
	}
	if !inScope(policy.ScopeFor(p, policy.ResourcePrescription), prescription) {
		return nil, apperrors.NotFound("prescription")
	}

	if req.Medication != nil {
		prescription.Medication = *req.Medication
	}
	if req.Dosage != nil {
		prescription.Dosage = *req.Dosage
	}
	if req.Instructions != nil {
		prescription.Instructions = *req.Instructions
	}
	if req.IsActive != nil {
		prescription.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, prescription); err != nil {
		return nil, apperrors.Internal(err)
	}
	return prescription, nil
}

func (s *Service) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	if !policy.Allows(p, policy.ResourcePrescription, policy.ActionDelete) {
		return apperrors.Permission()
	}

	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("prescription")
	}
	if !inScope(policy.ScopeFor(p, policy.ResourcePrescription), prescription) {
		return apperrors.NotFound("prescription")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func inScope(scope policy.Scope, prescription *model.Prescription) bool {
	switch {
	case scope.Unrestricted:
		return true
	case scope.Empty:
		return false
	case scope.DoctorID != nil:
		return prescription.DoctorID == *scope.DoctorID
	case scope.PatientID != nil:
		return prescription.PatientID == *scope.PatientID
	}
	return false
}
