// Package registration creates a user and its role profile as one atomic
// unit. A user row must never outlive a failed profile insert.
package registration

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hms-api/internal/email"
	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
	"github.com/jwalitptl/hms-api/internal/repository/postgres"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/security"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

const patientIDAttempts = 3

type Service struct {
	tx           repository.Transactor
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	labStaffRepo repository.LabStaffRepository
	hasher       security.PasswordHasher
	policy       *security.PasswordPolicy
	emailSvc     email.Service
}

func NewService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	labStaffRepo repository.LabStaffRepository,
	hasher security.PasswordHasher,
	policy *security.PasswordPolicy,
	emailSvc email.Service,
) *Service {
	return &Service{
		tx:           tx,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		labStaffRepo: labStaffRepo,
		hasher:       hasher,
		policy:       policy,
		emailSvc:     emailSvc,
	}
}

// Register persists the user and, for non-admin roles, exactly one role
// profile inside a single transaction. On any failure nothing persists.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	if !req.Role.Valid() {
		return nil, apperrors.Validation("role", "unknown role")
	}
	if !phonePattern.MatchString(req.Phone) {
		return nil, apperrors.Validation("phone", "phone number must match +999999999, 9 to 15 digits")
	}
	if err := s.policy.Validate(req.Password, req.Username, req.Email, req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
		IsActive:     true,
	}

	var patientID string

	attempt := func() error {
		return s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
			if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
				return err
			}
			switch req.Role {
			case model.RoleAdmin:
				return nil
			case model.RoleDoctor:
				return s.doctorRepo.CreateTx(ctx, tx, &model.Doctor{UserID: user.ID})
			case model.RoleLab:
				return s.labStaffRepo.CreateTx(ctx, tx, &model.LabStaff{UserID: user.ID})
			case model.RolePatient:
				return s.patientRepo.CreateTx(ctx, tx, &model.Patient{
					UserID:    user.ID,
					PatientID: patientID,
				})
			}
			return fmt.Errorf("unreachable role %q", req.Role)
		})
	}

	if req.Role == model.RolePatient {
		// The generated identifier is unique by construction with
		// overwhelming probability; the store constraint is the backstop
		// and a collision is retried with a fresh value.
		for i := 0; i < patientIDAttempts; i++ {
			patientID, err = security.GeneratePatientID()
			if err != nil {
				return nil, apperrors.Internal(err)
			}
			err = attempt()
			if err == nil || !postgres.IsUniqueViolation(err, "patients_patient_id_key") {
				break
			}
		}
	} else {
		err = attempt()
	}

	if err != nil {
		return nil, translateUniqueViolation(err)
	}

	s.sendWelcome(user, patientID)

	resp := &model.RegisterResponse{User: user}
	if req.Role == model.RolePatient {
		resp.PatientID = patientID
	}
	return resp, nil
}

func (s *Service) sendWelcome(user *model.User, patientID string) {
	var err error
	if patientID != "" {
		err = s.emailSvc.SendPatientCredentials(user.Email, user.FirstName, patientID)
	} else {
		err = s.emailSvc.SendWelcome(user.Email, user.FirstName)
	}
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send welcome email")
	}
}

func translateUniqueViolation(err error) error {
	switch {
	case postgres.IsUniqueViolation(err, "users_username_key"):
		return apperrors.Validation("username", "username already taken")
	case postgres.IsUniqueViolation(err, "users_email_key"):
		return apperrors.Validation("email", "email already registered")
	case postgres.IsUniqueViolation(err, ""):
		return apperrors.Internal(err)
	default:
		return apperrors.Internal(err)
	}
}
