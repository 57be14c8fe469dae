package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/pkg/auth"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/security"
)

type memUserRepo struct{ users map[uuid.UUID]*model.User }

func (r *memUserRepo) CreateTx(context.Context, *sqlx.Tx, *model.User) error { return nil }
func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}
func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}
func (r *memUserRepo) Update(context.Context, *model.User) error      { return nil }
func (r *memUserRepo) DeleteCascade(context.Context, uuid.UUID) error { return nil }
func (r *memUserRepo) List(context.Context, *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

type memPatientRepo struct{ patients map[string]*model.Patient }

func (r *memPatientRepo) CreateTx(context.Context, *sqlx.Tx, *model.Patient) error { return nil }
func (r *memPatientRepo) Get(context.Context, uuid.UUID) (*model.Patient, error) {
	return nil, apperrors.NotFound("patient")
}
func (r *memPatientRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("patient")
}
func (r *memPatientRepo) GetByPatientID(_ context.Context, patientID string) (*model.Patient, error) {
	p, ok := r.patients[patientID]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	return p, nil
}
func (r *memPatientRepo) Update(context.Context, *model.Patient) error { return nil }
func (r *memPatientRepo) List(context.Context, *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}
func (r *memPatientRepo) Count(context.Context) (int64, error) { return 0, nil }

type memDoctorRepo struct{ byUser map[uuid.UUID]*model.Doctor }

func (r *memDoctorRepo) CreateTx(context.Context, *sqlx.Tx, *model.Doctor) error { return nil }
func (r *memDoctorRepo) Get(context.Context, uuid.UUID) (*model.Doctor, error) {
	return nil, apperrors.NotFound("doctor")
}
func (r *memDoctorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	d, ok := r.byUser[userID]
	if !ok {
		return nil, apperrors.NotFound("doctor")
	}
	return d, nil
}
func (r *memDoctorRepo) Update(context.Context, *model.Doctor) error { return nil }
func (r *memDoctorRepo) List(context.Context, *model.DoctorFilters) ([]*model.Doctor, error) {
	return nil, nil
}
func (r *memDoctorRepo) Count(context.Context) (int64, error) { return 0, nil }

type memLabStaffRepo struct{ byUser map[uuid.UUID]*model.LabStaff }

func (r *memLabStaffRepo) CreateTx(context.Context, *sqlx.Tx, *model.LabStaff) error { return nil }
func (r *memLabStaffRepo) Get(context.Context, uuid.UUID) (*model.LabStaff, error) {
	return nil, apperrors.NotFound("lab staff")
}
func (r *memLabStaffRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.LabStaff, error) {
	s, ok := r.byUser[userID]
	if !ok {
		return nil, apperrors.NotFound("lab staff")
	}
	return s, nil
}
func (r *memLabStaffRepo) Update(context.Context, *model.LabStaff) error { return nil }
func (r *memLabStaffRepo) List(context.Context) ([]*model.LabStaff, error) {
	return nil, nil
}

type memTokenRepo struct{ valid map[string]bool }

func key(userID uuid.UUID, tokenID string) string { return userID.String() + ":" + tokenID }

func (r *memTokenRepo) StoreRefreshToken(_ context.Context, userID uuid.UUID, tokenID string, _ time.Duration) error {
	r.valid[key(userID, tokenID)] = true
	return nil
}
func (r *memTokenRepo) RefreshTokenValid(_ context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	return r.valid[key(userID, tokenID)], nil
}
func (r *memTokenRepo) RevokeRefreshToken(_ context.Context, userID uuid.UUID, tokenID string) error {
	delete(r.valid, key(userID, tokenID))
	return nil
}

type fixture struct {
	svc      *Service
	users    *memUserRepo
	patients *memPatientRepo
	doctors  *memDoctorRepo
	labStaff *memLabStaffRepo
	tokens   *memTokenRepo
	hasher   security.PasswordHasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    &memUserRepo{users: map[uuid.UUID]*model.User{}},
		patients: &memPatientRepo{patients: map[string]*model.Patient{}},
		doctors:  &memDoctorRepo{byUser: map[uuid.UUID]*model.Doctor{}},
		labStaff: &memLabStaffRepo{byUser: map[uuid.UUID]*model.LabStaff{}},
		tokens:   &memTokenRepo{valid: map[string]bool{}},
		hasher:   security.NewBcryptHasher(4),
	}
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Minute,
		RefreshExpiry: time.Hour,
	})
	f.svc = NewService(f.users, f.patients, f.doctors, f.labStaff, f.tokens, jwtSvc, f.hasher, time.Hour)
	return f
}

func (f *fixture) addUser(t *testing.T, role model.Role, username, password, phone string) *model.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Phone:        phone,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}
	u.ID = uuid.New()
	f.users.users[u.ID] = u
	return u
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, model.RoleAdmin, "admin", "sturdy passphrase", "+15550000001")

	resp, err := f.svc.Login(context.Background(), &model.LoginRequest{Username: "admin", Password: "sturdy passphrase"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, model.RoleAdmin, "admin", "sturdy passphrase", "+15550000001")
	inactive := f.addUser(t, model.RoleDoctor, "gone", "sturdy passphrase", "+15550000002")
	inactive.IsActive = false

	cases := []model.LoginRequest{
		{Username: "nobody", Password: "sturdy passphrase"},
		{Username: "admin", Password: "wrong"},
		{Username: "gone", Password: "sturdy passphrase"},
	}
	for _, req := range cases {
		_, err := f.svc.Login(context.Background(), &req)
		require.Error(t, err, "username %q", req.Username)
		assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
		assert.EqualError(t, err, apperrors.Authentication().Error())
	}
}

func TestLoginPatient(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, model.RolePatient, "pat", "sturdy passphrase", "+15550001234")
	f.patients.patients["ABCDEF1234"] = &model.Patient{UserID: u.ID, PatientID: "ABCDEF1234"}

	resp, err := f.svc.LoginPatient(context.Background(), &model.PatientLoginRequest{
		PatientID: "ABCDEF1234",
		Phone:     "+15550001234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginPatientFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, model.RolePatient, "pat", "sturdy passphrase", "+15550001234")
	f.patients.patients["ABCDEF1234"] = &model.Patient{UserID: u.ID, PatientID: "ABCDEF1234"}

	cases := []model.PatientLoginRequest{
		{PatientID: "ZZZZZZZZZZ", Phone: "+15550001234"}, // unknown patient id
		{PatientID: "ABCDEF1234", Phone: "+15559999999"}, // phone mismatch
	}
	for _, req := range cases {
		_, err := f.svc.LoginPatient(context.Background(), &req)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
		assert.EqualError(t, err, apperrors.Authentication().Error())
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, model.RoleAdmin, "admin", "sturdy passphrase", "+15550000001")

	first, err := f.svc.Login(context.Background(), &model.LoginRequest{Username: "admin", Password: "sturdy passphrase"})
	require.NoError(t, err)

	second, err := f.svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.RefreshToken)

	// the first refresh token was revoked by the rotation
	_, err = f.svc.Refresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, model.RoleAdmin, "admin", "sturdy passphrase", "+15550000001")

	resp, err := f.svc.Login(context.Background(), &model.LoginRequest{Username: "admin", Password: "sturdy passphrase"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), resp.RefreshToken))

	_, err = f.svc.Refresh(context.Background(), resp.RefreshToken)
	require.Error(t, err)
}

func TestResolvePrincipalLoadsProfile(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, model.RoleDoctor, "doc", "sturdy passphrase", "+15550000003")
	doctor := &model.Doctor{UserID: u.ID}
	doctor.ID = uuid.New()
	f.doctors.byUser[u.ID] = doctor

	p, err := f.svc.ResolvePrincipal(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, p.Role)
	require.NotNil(t, p.DoctorID)
	assert.Equal(t, doctor.ID, *p.DoctorID)
}

func TestResolvePrincipalMissingProfile(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, model.RolePatient, "pat", "sturdy passphrase", "+15550001234")

	_, err := f.svc.ResolvePrincipal(context.Background(), u.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindProfileIntegrity, apperrors.KindOf(err))
}
