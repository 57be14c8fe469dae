package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	"github.com/jwalitptl/hms-api/pkg/auth"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/security"
)

type Service struct {
	userRepo      repository.UserRepository
	patientRepo   repository.PatientRepository
	doctorRepo    repository.DoctorRepository
	labStaffRepo  repository.LabStaffRepository
	tokenRepo     repository.TokenRepository
	jwtSvc        auth.JWTService
	hasher        security.PasswordHasher
	refreshExpiry time.Duration
}

func NewService(
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	labStaffRepo repository.LabStaffRepository,
	tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	refreshExpiry time.Duration,
) *Service {
	if refreshExpiry == 0 {
		refreshExpiry = 7 * 24 * time.Hour
	}
	return &Service{
		userRepo:      userRepo,
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		labStaffRepo:  labStaffRepo,
		tokenRepo:     tokenRepo,
		jwtSvc:        jwtSvc,
		hasher:        hasher,
		refreshExpiry: refreshExpiry,
	}
}

// Login authenticates by username and password. Every failure path yields
// the same generic error.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Authentication()
	}
	if !user.IsActive {
		return nil, apperrors.Authentication()
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Authentication()
	}
	return s.issueTokens(ctx, user)
}

// LoginPatient authenticates by (patient_id, phone). The pair must resolve
// to exactly one user; unknown patient IDs and phone mismatches are
// indistinguishable to the caller.
func (s *Service) LoginPatient(ctx context.Context, req *model.PatientLoginRequest) (*model.TokenResponse, error) {
	patient, err := s.patientRepo.GetByPatientID(ctx, req.PatientID)
	if err != nil {
		return nil, apperrors.Authentication()
	}

	user, err := s.userRepo.Get(ctx, patient.UserID)
	if err != nil {
		return nil, apperrors.Authentication()
	}
	if !user.IsActive || user.Role != model.RolePatient {
		return nil, apperrors.Authentication()
	}
	if subtle.ConstantTimeCompare([]byte(user.Phone), []byte(req.Phone)) != 1 {
		return nil, apperrors.Authentication()
	}
	return s.issueTokens(ctx, user)
}

// Refresh validates the refresh token against both its signature and the
// revocation store, then rotates it.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Authentication()
	}

	valid, err := s.tokenRepo.RefreshTokenValid(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !valid {
		return nil, apperrors.Authentication()
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, apperrors.Authentication()
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, claims.UserID, claims.TokenID); err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. Access tokens simply expire.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return apperrors.Authentication()
	}
	return s.tokenRepo.RevokeRefreshToken(ctx, claims.UserID, claims.TokenID)
}

// ResolvePrincipal loads the user behind validated token claims and
// resolves its role profile exactly once. A missing profile for a
// profile-bearing role is a data-integrity fault, not a caller error.
func (s *Service) ResolvePrincipal(ctx context.Context, userID uuid.UUID) (*policy.Principal, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Authentication()
	}
	if !user.IsActive {
		return nil, apperrors.Authentication()
	}

	p := &policy.Principal{UserID: user.ID, Role: user.Role}

	switch user.Role {
	case model.RoleAdmin:
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.ProfileIntegrity(string(user.Role), err)
		}
		p.DoctorID = &doctor.ID
	case model.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.ProfileIntegrity(string(user.Role), err)
		}
		p.PatientID = &patient.ID
	case model.RoleLab:
		staff, err := s.labStaffRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.ProfileIntegrity(string(user.Role), err)
		}
		p.LabStaffID = &staff.ID
	default:
		return nil, apperrors.Authentication()
	}

	return p, nil
}

func (s *Service) issueTokens(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshToken, claims, err := s.jwtSvc.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.tokenRepo.StoreRefreshToken(ctx, user.ID, claims.TokenID, s.refreshExpiry); err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
