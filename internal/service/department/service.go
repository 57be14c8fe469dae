package department

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.DepartmentRepository
}

func NewService(repo repository.DepartmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, p policy.Principal) ([]*model.Department, error) {
	if !policy.Allows(p, policy.ResourceDepartment, policy.ActionList) {
		return []*model.Department{}, nil
	}
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.Department, error) {
	if !policy.Allows(p, policy.ResourceDepartment, policy.ActionRead) {
		return nil, apperrors.NotFound("department")
	}

	dept, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("department")
	}
	return dept, nil
}

func (s *Service) Create(ctx context.Context, p policy.Principal, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if !policy.Allows(p, policy.ResourceDepartment, policy.ActionCreate) {
		return nil, apperrors.Permission()
	}

	dept := &model.Department{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, apperrors.Internal(err)
	}
	return dept, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdateDepartmentRequest) (*model.Department, error) {
	if !policy.Allows(p, policy.ResourceDepartment, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	dept, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("department")
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.HeadDoctorID != nil {
		dept.HeadDoctorID = req.HeadDoctorID
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, apperrors.Internal(err)
	}
	return dept, nil
}

// Delete rejects removal while doctors, lab staff or appointments still
// reference the department; there is no implicit cascade.
func (s *Service) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	if !policy.Allows(p, policy.ResourceDepartment, policy.ActionDelete) {
		return apperrors.Permission()
	}

	dependents, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if dependents > 0 {
		return apperrors.Conflict("department still has doctors, lab staff or appointments assigned")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("department")
	}
	return nil
}
