package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type memRepo struct {
	rows       map[uuid.UUID]*model.User
	cascadeErr error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*model.User{}}
}

func (r *memRepo) CreateTx(context.Context, *sqlx.Tx, *model.User) error { return nil }

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}

func (r *memRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *memRepo) Update(_ context.Context, u *model.User) error {
	r.rows[u.ID] = u
	return nil
}

func (r *memRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	if r.cascadeErr != nil {
		return r.cascadeErr
	}
	if _, ok := r.rows[id]; !ok {
		return apperrors.NotFound("user")
	}
	delete(r.rows, id)
	return nil
}

func (r *memRepo) List(_ context.Context, f *model.UserFilters) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range r.rows {
		if f != nil && f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func seed(repo *memRepo, role model.Role) *model.User {
	u := &model.User{Username: uuid.New().String()[:8], Role: role, IsActive: true}
	u.ID = uuid.New()
	repo.rows[u.ID] = u
	return u
}

func admin() policy.Principal {
	return policy.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
}

func TestListAdminOnly(t *testing.T) {
	repo := newMemRepo()
	seed(repo, model.RoleDoctor)
	seed(repo, model.RolePatient)
	svc := NewService(repo)

	rows, err := svc.List(context.Background(), admin(), &model.UserFilters{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	doctorID := uuid.New()
	doctor := policy.Principal{UserID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}
	rows, err = svc.List(context.Background(), doctor, &model.UserFilters{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListRoleFilter(t *testing.T) {
	repo := newMemRepo()
	seed(repo, model.RoleDoctor)
	seed(repo, model.RolePatient)
	seed(repo, model.RolePatient)
	svc := NewService(repo)

	rows, err := svc.List(context.Background(), admin(), &model.UserFilters{Role: model.RolePatient})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestUpdateDeniedForNonAdmin(t *testing.T) {
	repo := newMemRepo()
	target := seed(repo, model.RolePatient)
	svc := NewService(repo)

	patientID := uuid.New()
	caller := policy.Principal{UserID: uuid.New(), Role: model.RolePatient, PatientID: &patientID}
	name := "Eve"
	_, err := svc.Update(context.Background(), caller, target.ID, &model.UpdateUserRequest{FirstName: &name})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPermission, apperrors.KindOf(err))
}

func TestUpdateCannotChangeRole(t *testing.T) {
	repo := newMemRepo()
	target := seed(repo, model.RolePatient)
	svc := NewService(repo)

	active := false
	updated, err := svc.Update(context.Background(), admin(), target.ID, &model.UpdateUserRequest{IsActive: &active})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	// the request type carries no role field at all
	assert.Equal(t, model.RolePatient, updated.Role)
}

func TestDeleteCascades(t *testing.T) {
	repo := newMemRepo()
	target := seed(repo, model.RoleDoctor)
	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), admin(), target.ID))
	assert.Empty(t, repo.rows)

	err := svc.Delete(context.Background(), admin(), target.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

// An existing user whose cascade fails, for a constraint violation or an
// outage, is a server fault, not a 404.
func TestDeleteFailureIsInternal(t *testing.T) {
	repo := newMemRepo()
	target := seed(repo, model.RoleDoctor)
	repo.cascadeErr = errors.New("pq: update or delete on table \"appointments\" violates foreign key constraint")
	svc := NewService(repo)

	err := svc.Delete(context.Background(), admin(), target.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
