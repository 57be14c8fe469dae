package patient

import (
	"context"
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
	rows map[uuid.UUID]*model.Patient
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*model.Patient{}}
}

func (r *memRepo) CreateTx(context.Context, *sqlx.Tx, *model.Patient) error { return nil }

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	return p, nil
}

func (r *memRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Patient, error) {
	for _, p := range r.rows {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("patient")
}

func (r *memRepo) GetByPatientID(_ context.Context, patientID string) (*model.Patient, error) {
	for _, p := range r.rows {
		if p.PatientID == patientID {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("patient")
}

func (r *memRepo) Update(_ context.Context, p *model.Patient) error {
	r.rows[p.ID] = p
	return nil
}

func (r *memRepo) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, error) {
	out := []*model.Patient{}
	for _, p := range r.rows {
		out = append(out, p)
	}
	return out, nil
}

func (r *memRepo) Count(context.Context) (int64, error) { return int64(len(r.rows)), nil }

func seed(repo *memRepo, userID uuid.UUID) *model.Patient {
	p := &model.Patient{UserID: userID, PatientID: "ABCDEF1234"}
	p.ID = uuid.New()
	repo.rows[p.ID] = p
	return p
}

func patientPrincipal(userID, profileID uuid.UUID) policy.Principal {
	return policy.Principal{UserID: userID, Role: model.RolePatient, PatientID: &profileID}
}

func TestListPatientSeesOnlySelf(t *testing.T) {
	repo := newMemRepo()
	userID := uuid.New()
	own := seed(repo, userID)
	seed(repo, uuid.New())
	seed(repo, uuid.New())
	svc := NewService(repo)

	rows, err := svc.List(context.Background(), patientPrincipal(userID, own.ID), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, own.ID, rows[0].ID)
}

func TestListDoctorSeesAll(t *testing.T) {
	repo := newMemRepo()
	seed(repo, uuid.New())
	seed(repo, uuid.New())
	svc := NewService(repo)

	doctorID := uuid.New()
	p := policy.Principal{UserID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}
	rows, err := svc.List(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGetForeignProfileIsNotFound(t *testing.T) {
	repo := newMemRepo()
	userID := uuid.New()
	own := seed(repo, userID)
	foreign := seed(repo, uuid.New())
	svc := NewService(repo)

	caller := patientPrincipal(userID, own.ID)

	_, err := svc.Get(context.Background(), caller, foreign.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	got, err := svc.Get(context.Background(), caller, own.ID)
	require.NoError(t, err)
	assert.Equal(t, own.ID, got.ID)
}

func TestUpdateForeignProfileIsNotFound(t *testing.T) {
	repo := newMemRepo()
	userID := uuid.New()
	own := seed(repo, userID)
	foreign := seed(repo, uuid.New())
	svc := NewService(repo)

	caller := patientPrincipal(userID, own.ID)
	address := "12 New Street"

	_, err := svc.Update(context.Background(), caller, foreign.ID, &model.UpdatePatientRequest{Address: &address})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	updated, err := svc.Update(context.Background(), caller, own.ID, &model.UpdatePatientRequest{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, address, updated.Address)
	// the generated patient identifier never changes
	assert.Equal(t, own.PatientID, updated.PatientID)
}
