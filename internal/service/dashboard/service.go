// Package dashboard computes the role-specific statistics blocks by
// counting through the same policy filters the list endpoints use.
package dashboard

import (
	"context"
	"time"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/policy"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

const recentAppointmentWindow = 5

type Service struct {
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	departmentRepo  repository.DepartmentRepository
	appointmentRepo repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	labTestRepo     repository.LabTestRepository
	billingRepo     repository.BillingRepository

	// now is the clock used for "today"; replaced in tests.
	now func() time.Time
}

func NewService(
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	departmentRepo repository.DepartmentRepository,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	labTestRepo repository.LabTestRepository,
	billingRepo repository.BillingRepository,
) *Service {
	return &Service{
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		departmentRepo:   departmentRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		labTestRepo:      labTestRepo,
		billingRepo:      billingRepo,
		now:              time.Now,
	}
}

// WithClock replaces the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Stats returns the statistics block for the principal's role. A role
// with no defined block gets the empty object, never an error.
func (s *Service) Stats(ctx context.Context, p policy.Principal) (*model.DashboardStats, error) {
	switch p.Role {
	case model.RoleAdmin:
		return s.adminStats(ctx)
	case model.RoleDoctor:
		return s.doctorStats(ctx, p)
	case model.RolePatient:
		return s.patientStats(ctx, p)
	case model.RoleLab:
		return s.labStats(ctx, p)
	}
	return &model.DashboardStats{}, nil
}

func (s *Service) adminStats(ctx context.Context) (*model.DashboardStats, error) {
	patients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	doctors, err := s.doctorRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	appointments, err := s.appointmentRepo.Count(ctx, nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	departments, err := s.departmentRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	recent, err := s.appointmentRepo.CountRecent(ctx, recentAppointmentWindow)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	pendingBilling, err := s.billingRepo.Count(ctx, &model.BillingFilters{Status: model.BillingStatusPending})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.DashboardStats{
		TotalPatients:      model.Count(patients),
		TotalDoctors:       model.Count(doctors),
		TotalAppointments:  model.Count(appointments),
		TotalDepartments:   model.Count(departments),
		RecentAppointments: model.Count(recent),
		PendingBilling:     model.Count(pendingBilling),
	}, nil
}

func (s *Service) doctorStats(ctx context.Context, p policy.Principal) (*model.DashboardStats, error) {
	// Total patients is deliberately system-wide, not scoped to the
	// doctor's own caseload.
	patients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	scope := policy.ScopeFor(p, policy.ResourceAppointment)
	mine, err := s.appointmentRepo.Count(ctx, &model.AppointmentFilters{DoctorID: scope.DoctorID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	// Midnight in the clock's own zone; Truncate would snap to UTC and
	// count the wrong day on servers east of it.
	now := s.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	todayCount, err := s.appointmentRepo.Count(ctx, &model.AppointmentFilters{
		DoctorID: scope.DoctorID,
		Date:     &today,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	prescriptions, err := s.prescriptionRepo.Count(ctx, &model.PrescriptionFilters{DoctorID: scope.DoctorID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	pendingTests, err := s.labTestRepo.Count(ctx, &model.LabTestFilters{
		DoctorID: scope.DoctorID,
		Status:   model.LabTestStatusPending,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.DashboardStats{
		TotalPatients:     model.Count(patients),
		MyAppointments:    model.Count(mine),
		TodayAppointments: model.Count(todayCount),
		MyPrescriptions:   model.Count(prescriptions),
		PendingLabTests:   model.Count(pendingTests),
	}, nil
}

func (s *Service) patientStats(ctx context.Context, p policy.Principal) (*model.DashboardStats, error) {
	appointments, err := s.appointmentRepo.Count(ctx, &model.AppointmentFilters{PatientID: p.PatientID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	prescriptions, err := s.prescriptionRepo.Count(ctx, &model.PrescriptionFilters{PatientID: p.PatientID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	labTests, err := s.labTestRepo.Count(ctx, &model.LabTestFilters{PatientID: p.PatientID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	pendingBilling, err := s.billingRepo.Count(ctx, &model.BillingFilters{
		PatientID: p.PatientID,
		Status:    model.BillingStatusPending,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.DashboardStats{
		MyAppointments:  model.Count(appointments),
		MyPrescriptions: model.Count(prescriptions),
		MyLabTests:      model.Count(labTests),
		PendingBilling:  model.Count(pendingBilling),
	}, nil
}

func (s *Service) labStats(ctx context.Context, p policy.Principal) (*model.DashboardStats, error) {
	total, err := s.labTestRepo.Count(ctx, nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	mine, err := s.labTestRepo.Count(ctx, &model.LabTestFilters{LabStaffID: p.LabStaffID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	pending, err := s.labTestRepo.Count(ctx, &model.LabTestFilters{Status: model.LabTestStatusPending})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	completed, err := s.labTestRepo.Count(ctx, &model.LabTestFilters{Status: model.LabTestStatusCompleted})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.DashboardStats{
		TotalLabTests:     model.Count(total),
		MyLabTests:        model.Count(mine),
		PendingLabTests:   model.Count(pending),
		CompletedLabTests: model.Count(completed),
	}, nil
}
