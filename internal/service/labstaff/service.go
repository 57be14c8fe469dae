package labstaff

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.LabStaffRepository
}

func NewService(repo repository.LabStaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, p policy.Principal) ([]*model.LabStaff, error) {
	if !policy.Allows(p, policy.ResourceLabStaff, policy.ActionList) {
		return []*model.LabStaff{}, nil
	}
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.LabStaff, error) {
	if !policy.Allows(p, policy.ResourceLabStaff, policy.ActionRead) {
		return nil, apperrors.NotFound("lab staff")
	}

	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("lab staff")
	}
	return staff, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdateLabStaffRequest) (*model.LabStaff, error) {
	if !policy.Allows(p, policy.ResourceLabStaff, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("lab staff")
	}

	if req.DepartmentID != nil {
		staff.DepartmentID = req.DepartmentID
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}
