package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.BillingRepository
}

func NewService(repo repository.BillingRepository) *Service {
	return &Service{repo: repo}
}

func scopeFilters(scope policy.Scope, filters *model.BillingFilters) *model.BillingFilters {
	if filters == nil {
		filters = &model.BillingFilters{}
	}
	if scope.PatientID != nil {
		filters.PatientID = scope.PatientID
	}
	return filters
}

func (s *Service) List(ctx context.Context, p policy.Principal, filters *model.BillingFilters) ([]*model.Billing, error) {
	scope := policy.ScopeFor(p, policy.ResourceBilling)
	if scope.Empty {
		return []*model.Billing{}, nil
	}
	return s.repo.List(ctx, scopeFilters(scope, filters))
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.Billing, error) {
	scope := policy.ScopeFor(p, policy.ResourceBilling)
	if scope.Empty {
		return nil, apperrors.NotFound("billing record")
	}

	billing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("billing record")
	}
	if !inScope(scope, billing) {
		return nil, apperrors.NotFound("billing record")
	}
	return billing, nil
}

func (s *Service) Create(ctx context.Context, p policy.Principal, req *model.CreateBillingRequest) (*model.Billing, error) {
	if !policy.Allows(p, policy.ResourceBilling, policy.ActionCreate) {
		return nil, apperrors.Permission()
	}

	billing := &model.Billing{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		LabTestID:     req.LabTestID,
		AmountCents:   req.AmountCents,
		Description:   req.Description,
		Status:        model.BillingStatusPending,
		IssuedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, billing); err != nil {
		return nil, apperrors.Internal(err)
	}
	return billing, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdateBillingRequest) (*model.Billing, error) {
	if !policy.Allows(p, policy.ResourceBilling, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	billing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("billing record")
	}

	if req.AmountCents != nil {
		billing.AmountCents = *req.AmountCents
	}
	if req.Description != nil {
		billing.Description = *req.Description
	}
	if req.Status != nil {
		billing.Status = *req.Status
		if *req.Status == model.BillingStatusPaid && billing.PaidAt == nil {
			now := time.Now()
			billing.PaidAt = &now
		}
	}

	if err := s.repo.Update(ctx, billing); err != nil {
		return nil, apperrors.Internal(err)
	}
	return billing, nil
}

func (s *Service) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	if !policy.Allows(p, policy.ResourceBilling, policy.ActionDelete) {
		return apperrors.Permission()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("billing record")
	}
	return nil
}

func inScope(scope policy.Scope, billing *model.Billing) bool {
	switch {
	case scope.Unrestricted:
		return true
	case scope.Empty:
		return false
	case scope.PatientID != nil:
		return billing.PatientID == *scope.PatientID
	}
	return false
}
