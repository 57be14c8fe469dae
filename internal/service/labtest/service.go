package labtest

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.LabTestRepository
}

func NewService(repo repository.LabTestRepository) *Service {
	return &Service{repo: repo}
}

func scopeFilters(scope policy.Scope, filters *model.LabTestFilters) *model.LabTestFilters {
	if filters == nil {
		filters = &model.LabTestFilters{}
	}
	if scope.DoctorID != nil {
		filters.DoctorID = scope.DoctorID
	}
	if scope.PatientID != nil {
		filters.PatientID = scope.PatientID
	}
	if scope.LabStaffID != nil {
		filters.LabStaffID = scope.LabStaffID
	}
	return filters
}

func (s *Service) List(ctx context.Context, p policy.Principal, filters *model.LabTestFilters) ([]*model.LabTest, error) {
	scope := policy.ScopeFor(p, policy.ResourceLabTest)
	if scope.Empty {
		return []*model.LabTest{}, nil
	}
	return s.repo.List(ctx, scopeFilters(scope, filters))
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.LabTest, error) {
	scope := policy.ScopeFor(p, policy.ResourceLabTest)
	if scope.Empty {
		return nil, apperrors.NotFound("lab test")
	}

	test, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("lab test")
	}
	if !inScope(scope, test) {
		return nil, apperrors.NotFound("lab test")
	}
	return test, nil
}

// Create orders a lab test. An ordering doctor is recorded as the
// referring doctor; lab staff creating a test are recorded as assigned.
func (s *Service) Create(ctx context.Context, p policy.Principal, req *model.CreateLabTestRequest) (*model.LabTest, error) {
	if !policy.Allows(p, policy.ResourceLabTest, policy.ActionCreate) {
		return nil, apperrors.Permission()
	}

	test := &model.LabTest{
		PatientID:   req.PatientID,
		TestName:    req.TestName,
		Description: req.Description,
		TestDate:    req.TestDate,
		Status:      model.LabTestStatusPending,
	}

	switch p.Role {
	case model.RoleDoctor:
		test.DoctorID = p.DoctorID
	case model.RoleLab:
		test.LabStaffID = p.LabStaffID
	}

	if err := s.repo.Create(ctx, test); err != nil {
		return nil, apperrors.Internal(err)
	}
	return test, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdateLabTestRequest) (*model.LabTest, error) {
	if !policy.Allows(p, policy.ResourceLabTest, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	test, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("lab test")
	}
	if !inScope(policy.ScopeFor(p, policy.ResourceLabTest), test) {
		return nil, apperrors.NotFound("lab test")
	}

	if req.TestName != nil {
		test.TestName = *req.TestName
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.TestDate != nil {
		test.TestDate = req.TestDate
	}
	if req.Result != nil {
		test.Result = *req.Result
	}
	if req.Status != nil {
		test.Status = *req.Status
	}

	if err := s.repo.Update(ctx, test); err != nil {
		return nil, apperrors.Internal(err)
	}
	return test, nil
}

func (s *Service) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	if !policy.Allows(p, policy.ResourceLabTest, policy.ActionDelete) {
		return apperrors.Permission()
	}

	test, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("lab test")
	}
	if !inScope(policy.ScopeFor(p, policy.ResourceLabTest), test) {
		return apperrors.NotFound("lab test")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func inScope(scope policy.Scope, test *model.LabTest) bool {
	switch {
	case scope.Unrestricted:
		return true
	case scope.Empty:
		return false
	case scope.DoctorID != nil:
		return test.DoctorID != nil && *test.DoctorID == *scope.DoctorID
	case scope.PatientID != nil:
		return test.PatientID == *scope.PatientID
	case scope.LabStaffID != nil:
		return test.LabStaffID != nil && *test.LabStaffID == *scope.LabStaffID
	}
	return false
}
