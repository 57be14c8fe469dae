package prescription

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type memRepo struct {
	rows map[uuid.UUID]*model.Prescription
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*model.Prescription{}}
}

func (r *memRepo) Create(_ context.Context, p *model.Prescription) error {
	p.ID = uuid.New()
	r.rows[p.ID] = p
	return nil
}

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*model.Prescription, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("prescription")
	}
	return p, nil
}

func (r *memRepo) Update(_ context.Context, p *model.Prescription) error {
	r.rows[p.ID] = p
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *memRepo) List(_ context.Context, f *model.PrescriptionFilters) ([]*model.Prescription, error) {
	out := []*model.Prescription{}
	for _, p := range r.rows {
		if f != nil {
			if f.DoctorID != nil && p.DoctorID != *f.DoctorID {
				continue
			}
			if f.PatientID != nil && p.PatientID != *f.PatientID {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memRepo) Count(ctx context.Context, f *model.PrescriptionFilters) (int64, error) {
	rows, err := r.List(ctx, f)
	return int64(len(rows)), err
}

func adminPrincipal() policy.Principal {
	return policy.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
}

func doctorPrincipal(doctorID uuid.UUID) policy.Principal {
	return policy.Principal{UserID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}
}

func TestCreateAdminNamesDoctor(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	doctorID := uuid.New()

	created, err := svc.Create(context.Background(), adminPrincipal(), &model.CreatePrescriptionRequest{
		PatientID:  uuid.New(),
		DoctorID:   &doctorID,
		Medication: "amoxicillin",
		Dosage:     "500mg",
	})
	require.NoError(t, err)
	assert.Equal(t, doctorID, created.DoctorID)
	assert.True(t, created.IsActive)
}

func TestCreateAdminWithoutDoctorFails(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.Create(context.Background(), adminPrincipal(), &model.CreatePrescriptionRequest{
		PatientID:  uuid.New(),
		Medication: "amoxicillin",
		Dosage:     "500mg",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestCreatePinsDoctorToOwnProfile(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	own, other := uuid.New(), uuid.New()

	created, err := svc.Create(context.Background(), doctorPrincipal(own), &model.CreatePrescriptionRequest{
		PatientID:  uuid.New(),
		DoctorID:   &other,
		Medication: "ibuprofen",
		Dosage:     "200mg",
	})
	require.NoError(t, err)
	assert.Equal(t, own, created.DoctorID)
}

func TestCreateDeniedForPatient(t *testing.T) {
	svc := NewService(newMemRepo())
	patientID := uuid.New()
	p := policy.Principal{UserID: uuid.New(), Role: model.RolePatient, PatientID: &patientID}

	_, err := svc.Create(context.Background(), p, &model.CreatePrescriptionRequest{
		PatientID:  patientID,
		Medication: "amoxicillin",
		Dosage:     "500mg",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPermission))
}
