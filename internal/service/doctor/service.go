package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, p policy.Principal, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	if !policy.Allows(p, policy.ResourceDoctor, policy.ActionList) {
		return []*model.Doctor{}, nil
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.Doctor, error) {
	if !policy.Allows(p, policy.ResourceDoctor, policy.ActionRead) {
		return nil, apperrors.NotFound("doctor")
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("doctor")
	}
	return doctor, nil
}

// Update modifies a doctor profile. A doctor may only update their own;
// admin may update any.
func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if !policy.Allows(p, policy.ResourceDoctor, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}
	if p.Role == model.RoleDoctor && (p.DoctorID == nil || *p.DoctorID != id) {
		return nil, apperrors.Permission()
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("doctor")
	}

	if req.DepartmentID != nil {
		doctor.DepartmentID = req.DepartmentID
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.LicenseNumber != nil {
		doctor.LicenseNumber = *req.LicenseNumber
	}
	if req.YearsExperience != nil {
		doctor.YearsExperience = *req.YearsExperience
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctor, nil
}
