// Package user implements admin-only management of principals. Every
// operation takes the caller's principal explicitly; there is no ambient
// current user.
package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, p policy.Principal, filters *model.UserFilters) ([]*model.User, error) {
	if !policy.Allows(p, policy.ResourceUser, policy.ActionList) {
		// No rule for this role: an empty set, indistinguishable from no
		// rows existing.
		return []*model.User{}, nil
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (*model.User, error) {
	if !policy.Allows(p, policy.ResourceUser, policy.ActionRead) {
		return nil, apperrors.NotFound("user")
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("user")
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	if !policy.Allows(p, policy.ResourceUser, policy.ActionUpdate) {
		return nil, apperrors.Permission()
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("user")
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// Delete removes the user together with its profile and everything the
// profile owns, as one explicit transactional traversal.
func (s *Service) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	if !policy.Allows(p, policy.ResourceUser, policy.ActionDelete) {
		return apperrors.Permission()
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return apperrors.NotFound("user")
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
