package registration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/email"
	"github.com/jwalitptl/hms-api/internal/model"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/security"
)

// fakeStore keeps users and profiles in memory and simulates transaction
// rollback by discarding all writes from a failed WithTx callback.
type fakeStore struct {
	users    []*model.User
	doctors  []*model.Doctor
	patients []*model.Patient
	labStaff []*model.LabStaff

	failProfileInsert bool
	patientIDErrs     []error
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	users, doctors := len(s.users), len(s.doctors)
	patients, labStaff := len(s.patients), len(s.labStaff)
	if err := fn(nil); err != nil {
		s.users = s.users[:users]
		s.doctors = s.doctors[:doctors]
		s.patients = s.patients[:patients]
		s.labStaff = s.labStaff[:labStaff]
		return err
	}
	return nil
}

func (s *fakeStore) CreateUserTx(ctx context.Context, _ *sqlx.Tx, user *model.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return &pq.Error{Code: "23505", Constraint: "users_username_key"}
		}
		if u.Email == user.Email {
			return &pq.Error{Code: "23505", Constraint: "users_email_key"}
		}
	}
	user.ID = uuid.New()
	s.users = append(s.users, user)
	return nil
}

func (s *fakeStore) CreateDoctorTx(ctx context.Context, _ *sqlx.Tx, doctor *model.Doctor) error {
	if s.failProfileInsert {
		return assert.AnError
	}
	doctor.ID = uuid.New()
	s.doctors = append(s.doctors, doctor)
	return nil
}

func (s *fakeStore) CreatePatientTx(ctx context.Context, _ *sqlx.Tx, patient *model.Patient) error {
	if len(s.patientIDErrs) > 0 {
		err := s.patientIDErrs[0]
		s.patientIDErrs = s.patientIDErrs[1:]
		if err != nil {
			return err
		}
	}
	patient.ID = uuid.New()
	s.patients = append(s.patients, patient)
	return nil
}

func (s *fakeStore) CreateLabStaffTx(ctx context.Context, _ *sqlx.Tx, staff *model.LabStaff) error {
	if s.failProfileInsert {
		return assert.AnError
	}
	staff.ID = uuid.New()
	s.labStaff = append(s.labStaff, staff)
	return nil
}

// Narrow adapters so the fake satisfies only the methods Register uses.
type fakeUserRepo struct{ *fakeStore }

func (r fakeUserRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, u *model.User) error {
	return r.CreateUserTx(ctx, tx, u)
}
func (r fakeUserRepo) Get(context.Context, uuid.UUID) (*model.User, error) { return nil, nil }
func (r fakeUserRepo) GetByUsername(context.Context, string) (*model.User, error) {
	return nil, nil
}
func (r fakeUserRepo) Update(context.Context, *model.User) error       { return nil }
func (r fakeUserRepo) DeleteCascade(context.Context, uuid.UUID) error  { return nil }
func (r fakeUserRepo) List(context.Context, *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

type fakeDoctorRepo struct{ *fakeStore }

func (r fakeDoctorRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, d *model.Doctor) error {
	return r.CreateDoctorTx(ctx, tx, d)
}
func (r fakeDoctorRepo) Get(context.Context, uuid.UUID) (*model.Doctor, error) { return nil, nil }
func (r fakeDoctorRepo) GetByUserID(context.Context, uuid.UUID) (*model.Doctor, error) {
	return nil, nil
}
func (r fakeDoctorRepo) Update(context.Context, *model.Doctor) error { return nil }
func (r fakeDoctorRepo) List(context.Context, *model.DoctorFilters) ([]*model.Doctor, error) {
	return nil, nil
}
func (r fakeDoctorRepo) Count(context.Context) (int64, error) { return 0, nil }

type fakePatientRepo struct{ *fakeStore }

func (r fakePatientRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, p *model.Patient) error {
	return r.CreatePatientTx(ctx, tx, p)
}
func (r fakePatientRepo) Get(context.Context, uuid.UUID) (*model.Patient, error) { return nil, nil }
func (r fakePatientRepo) GetByUserID(context.Context, uuid.UUID) (*model.Patient, error) {
	return nil, nil
}
func (r fakePatientRepo) GetByPatientID(context.Context, string) (*model.Patient, error) {
	return nil, nil
}
func (r fakePatientRepo) Update(context.Context, *model.Patient) error { return nil }
func (r fakePatientRepo) List(context.Context, *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}
func (r fakePatientRepo) Count(context.Context) (int64, error) { return 0, nil }

type fakeLabStaffRepo struct{ *fakeStore }

func (r fakeLabStaffRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, s *model.LabStaff) error {
	return r.CreateLabStaffTx(ctx, tx, s)
}
func (r fakeLabStaffRepo) Get(context.Context, uuid.UUID) (*model.LabStaff, error) { return nil, nil }
func (r fakeLabStaffRepo) GetByUserID(context.Context, uuid.UUID) (*model.LabStaff, error) {
	return nil, nil
}
func (r fakeLabStaffRepo) Update(context.Context, *model.LabStaff) error { return nil }
func (r fakeLabStaffRepo) List(context.Context) ([]*model.LabStaff, error) {
	return nil, nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(
		store,
		fakeUserRepo{store},
		fakeDoctorRepo{store},
		fakePatientRepo{store},
		fakeLabStaffRepo{store},
		security.NewBcryptHasher(4),
		security.NewPasswordPolicy(8),
		email.NoopService{},
	)
}

func validRequest(role model.Role) *model.RegisterRequest {
	return &model.RegisterRequest{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+15550001111",
		Password:  "correct horse battery",
		Role:      role,
	}
}

func TestRegisterDoctorCreatesProfile(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	resp, err := svc.Register(context.Background(), validRequest(model.RoleDoctor))
	require.NoError(t, err)

	require.Len(t, store.users, 1)
	require.Len(t, store.doctors, 1)
	assert.Equal(t, store.users[0].ID, store.doctors[0].UserID)
	assert.Empty(t, resp.PatientID)
	assert.True(t, resp.User.IsActive)
}

func TestRegisterPatientGeneratesPatientID(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	resp, err := svc.Register(context.Background(), validRequest(model.RolePatient))
	require.NoError(t, err)

	require.Len(t, store.patients, 1)
	assert.Len(t, resp.PatientID, 10)
	assert.Equal(t, resp.PatientID, store.patients[0].PatientID)
	assert.Regexp(t, `^[A-Z0-9]{10}$`, resp.PatientID)
}

func TestRegisterAdminHasNoProfile(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), validRequest(model.RoleAdmin))
	require.NoError(t, err)

	assert.Len(t, store.users, 1)
	assert.Empty(t, store.doctors)
	assert.Empty(t, store.patients)
	assert.Empty(t, store.labStaff)
}

func TestRegisterRollsBackUserOnProfileFailure(t *testing.T) {
	store := &fakeStore{failProfileInsert: true}
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), validRequest(model.RoleLab))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))

	// the transaction failed, so neither row may survive
	assert.Empty(t, store.users)
	assert.Empty(t, store.labStaff)
}

func TestRegisterRetriesPatientIDCollision(t *testing.T) {
	store := &fakeStore{
		patientIDErrs: []error{
			&pq.Error{Code: "23505", Constraint: "patients_patient_id_key"},
			nil,
		},
	}
	svc := newTestService(store)

	resp, err := svc.Register(context.Background(), validRequest(model.RolePatient))
	require.NoError(t, err)
	require.Len(t, store.patients, 1)
	assert.Len(t, resp.PatientID, 10)
	// exactly one user survives the retried transaction
	assert.Len(t, store.users, 1)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), validRequest(model.RoleAdmin))
	require.NoError(t, err)

	dup := validRequest(model.RoleAdmin)
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "username", appErr.Field)
	assert.Len(t, store.users, 1)
}

func TestRegisterRejectsBadPhone(t *testing.T) {
	svc := newTestService(&fakeStore{})

	for _, phone := range []string{"12345678", "not-a-phone", "+12345678901234567", ""} {
		req := validRequest(model.RolePatient)
		req.Phone = phone
		_, err := svc.Register(context.Background(), req)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr, "phone %q", phone)
		assert.Equal(t, "phone", appErr.Field)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newTestService(&fakeStore{})

	req := validRequest(model.RoleDoctor)
	req.Password = "password"
	_, err := svc.Register(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	req = validRequest(model.RoleDoctor)
	req.Password = "jdoe12345"
	_, err = svc.Register(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService(&fakeStore{})

	req := validRequest(model.Role("superuser"))
	_, err := svc.Register(context.Background(), req)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "role", appErr.Field)
}
