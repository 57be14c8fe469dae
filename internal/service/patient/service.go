package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, p policy.Principal, filters *model.PatientFilters) ([]*model.Patient, error) {
	if !policy.Allows(p, policy.ResourcePatient, policy.ActionList) {
		return []*model.Patient{}, nil
	}

	scope := policy.ScopeFor(p, policy.ResourcePatient)
	switch {
	case scope.Empty:
		return []*model.Patient{}, nil
	case scope.SelfUserID != nil:
		// A patient only ever sees their own profile.
		own, err := s.repo.GetByUserID(ctx, *scope.SelfUserID)
		if err != nil {
			return nil, apperrors.ProfileIntegrity(string(p.Role), err)
		}
		return []*model.Patient{own}, nil
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.Patient, error) {
	if !policy.Allows(p, policy.ResourcePatient, policy.ActionRead) {
		return nil, apperrors.NotFound("patient")
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("patient")
	}

	scope := policy.ScopeFor(p, policy.ResourcePatient)
	if scope.SelfUserID != nil && patient.UserID != *scope.SelfUserID {
		// Out of scope reads as absent.
		return nil, apperrors.NotFound("patient")
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if !policy.Allows(p, policy.ResourcePatient, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("patient")
	}
	if p.Role == model.RolePatient && patient.UserID != p.UserID {
		return nil, apperrors.NotFound("patient")
	}

	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}
