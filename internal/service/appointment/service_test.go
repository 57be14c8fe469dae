package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

type memRepo struct {
	rows map[uuid.UUID]*model.Appointment
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*model.Appointment{}}
}

func (r *memRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	r.rows[a.ID] = a
	return nil
}

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("appointment")
	}
	return a, nil
}

func (r *memRepo) Update(_ context.Context, a *model.Appointment) error {
	r.rows[a.ID] = a
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *memRepo) List(_ context.Context, f *model.AppointmentFilters) ([]*model.Appointment, error) {
	out := []*model.Appointment{}
	for _, a := range r.rows {
		if f != nil {
			if f.DoctorID != nil && a.DoctorID != *f.DoctorID {
				continue
			}
			if f.PatientID != nil && a.PatientID != *f.PatientID {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memRepo) Count(ctx context.Context, f *model.AppointmentFilters) (int64, error) {
	rows, err := r.List(ctx, f)
	return int64(len(rows)), err
}

func (r *memRepo) CountRecent(context.Context, int) (int64, error) {
	return int64(len(r.rows)), nil
}

func seed(repo *memRepo, doctorID, patientID uuid.UUID) *model.Appointment {
	a := &model.Appointment{
		PatientID:    patientID,
		DoctorID:     doctorID,
		DepartmentID: uuid.New(),
		Date:         time.Now(),
		Time:         "10:00",
		Status:       model.AppointmentStatusScheduled,
	}
	a.ID = uuid.New()
	repo.rows[a.ID] = a
	return a
}

func doctorPrincipal(doctorID uuid.UUID) policy.Principal {
	return policy.Principal{UserID: uuid.New(), Role: model.RoleDoctor, DoctorID: &doctorID}
}

func patientPrincipal(patientID uuid.UUID) policy.Principal {
	return policy.Principal{UserID: uuid.New(), Role: model.RolePatient, PatientID: &patientID}
}

func TestListScopedToOwnRows(t *testing.T) {
	repo := newMemRepo()
	docA, docB := uuid.New(), uuid.New()
	patX, patY := uuid.New(), uuid.New()
	seed(repo, docA, patX)
	seed(repo, docA, patY)
	seed(repo, docB, patX)
	svc := NewService(repo)

	mine, err := svc.List(context.Background(), doctorPrincipal(docA), nil)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, a := range mine {
		assert.Equal(t, docA, a.DoctorID)
	}

	mine, err = svc.List(context.Background(), patientPrincipal(patX), nil)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, a := range mine {
		assert.Equal(t, patX, a.PatientID)
	}
}

func TestListCannotWidenScopeThroughFilters(t *testing.T) {
	repo := newMemRepo()
	docA, docB := uuid.New(), uuid.New()
	seed(repo, docA, uuid.New())
	seed(repo, docB, uuid.New())
	svc := NewService(repo)

	// a doctor asking for another doctor's rows still gets only their own
	rows, err := svc.List(context.Background(), doctorPrincipal(docA), &model.AppointmentFilters{DoctorID: &docB})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, docA, rows[0].DoctorID)
}

func TestListLabStaffGetsEmpty(t *testing.T) {
	repo := newMemRepo()
	seed(repo, uuid.New(), uuid.New())
	svc := NewService(repo)

	staffID := uuid.New()
	p := policy.Principal{UserID: uuid.New(), Role: model.RoleLab, LabStaffID: &staffID}
	rows, err := svc.List(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetOutOfScopeIsNotFound(t *testing.T) {
	repo := newMemRepo()
	docA, docB := uuid.New(), uuid.New()
	foreign := seed(repo, docB, uuid.New())
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), doctorPrincipal(docA), foreign.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	// indistinguishable from a row that does not exist
	_, missingErr := svc.Get(context.Background(), doctorPrincipal(docA), uuid.New())
	assert.EqualError(t, err, missingErr.Error())
}

func TestCreatePinsDoctorToOwnProfile(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	docA, docB := uuid.New(), uuid.New()

	created, err := svc.Create(context.Background(), doctorPrincipal(docA), &model.CreateAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorID:     docB, // ignored
		DepartmentID: uuid.New(),
		Date:         time.Now(),
		Time:         "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, docA, created.DoctorID)
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)
}

func TestCreatePinsPatientToOwnProfile(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	patX := uuid.New()

	created, err := svc.Create(context.Background(), patientPrincipal(patX), &model.CreateAppointmentRequest{
		PatientID:    uuid.New(), // ignored
		DoctorID:     uuid.New(),
		DepartmentID: uuid.New(),
		Date:         time.Now(),
		Time:         "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, patX, created.PatientID)
}

func TestCreateDeniedForLabStaff(t *testing.T) {
	svc := NewService(newMemRepo())
	staffID := uuid.New()
	p := policy.Principal{UserID: uuid.New(), Role: model.RoleLab, LabStaffID: &staffID}

	_, err := svc.Create(context.Background(), p, &model.CreateAppointmentRequest{
		PatientID:    uuid.New(),
		DoctorID:     uuid.New(),
		DepartmentID: uuid.New(),
		Date:         time.Now(),
		Time:         "09:30",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPermission, apperrors.KindOf(err))
}

func TestUpdateOutOfScopeIsNotFound(t *testing.T) {
	repo := newMemRepo()
	patX, patY := uuid.New(), uuid.New()
	foreign := seed(repo, uuid.New(), patY)
	svc := NewService(repo)

	status := model.AppointmentStatusCancelled
	_, err := svc.Update(context.Background(), patientPrincipal(patX), foreign.ID, &model.UpdateAppointmentRequest{Status: &status})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, model.AppointmentStatusScheduled, foreign.Status)
}

func TestAdminSeesEverything(t *testing.T) {
	repo := newMemRepo()
	seed(repo, uuid.New(), uuid.New())
	seed(repo, uuid.New(), uuid.New())
	svc := NewService(repo)

	admin := policy.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	rows, err := svc.List(context.Background(), admin, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, svc.Delete(context.Background(), admin, rows[0].ID))
	assert.Len(t, repo.rows, 1)
}
