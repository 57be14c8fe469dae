package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hms-api/internal/model"
)

func adminPrincipal() Principal {
	return Principal{UserID: uuid.New(), Role: model.RoleAdmin}
}

func doctorPrincipal() (Principal, uuid.UUID) {
	docID := uuid.New()
	return Principal{UserID: uuid.New(), Role: model.RoleDoctor, DoctorID: &docID}, docID
}

func patientPrincipal() (Principal, uuid.UUID) {
	patID := uuid.New()
	return Principal{UserID: uuid.New(), Role: model.RolePatient, PatientID: &patID}, patID
}

func labPrincipal() (Principal, uuid.UUID) {
	staffID := uuid.New()
	return Principal{UserID: uuid.New(), Role: model.RoleLab, LabStaffID: &staffID}, staffID
}

func TestAdminScopeIsUnrestrictedForEveryResource(t *testing.T) {
	admin := adminPrincipal()

	resources := []Resource{
		ResourceUser, ResourceDepartment, ResourceDoctor, ResourcePatient,
		ResourceLabStaff, ResourceAppointment, ResourcePrescription,
		ResourceLabTest, ResourceBilling,
	}

	for _, res := range resources {
		scope := ScopeFor(admin, res)
		assert.True(t, scope.Unrestricted, "admin scope for %s should be unrestricted", res)
		assert.False(t, scope.Empty)
	}
}

func TestPatientScopeIsPinnedToOwnProfile(t *testing.T) {
	p, patID := patientPrincipal()

	for _, res := range []Resource{ResourceAppointment, ResourcePrescription, ResourceLabTest, ResourceBilling} {
		scope := ScopeFor(p, res)
		assert.False(t, scope.Unrestricted, "patient scope for %s must be restricted", res)
		assert.False(t, scope.Empty)
		if assert.NotNil(t, scope.PatientID, "patient scope for %s must filter by patient", res) {
			assert.Equal(t, patID, *scope.PatientID)
		}
		assert.Nil(t, scope.DoctorID)
		assert.Nil(t, scope.LabStaffID)
	}
}

func TestDoctorScopeIsPinnedToOwnProfile(t *testing.T) {
	p, docID := doctorPrincipal()

	for _, res := range []Resource{ResourceAppointment, ResourcePrescription, ResourceLabTest} {
		scope := ScopeFor(p, res)
		assert.False(t, scope.Unrestricted)
		assert.False(t, scope.Empty)
		if assert.NotNil(t, scope.DoctorID) {
			assert.Equal(t, docID, *scope.DoctorID)
		}
		assert.Nil(t, scope.PatientID)
	}
}

func TestLabScope(t *testing.T) {
	p, staffID := labPrincipal()

	scope := ScopeFor(p, ResourceLabTest)
	if assert.NotNil(t, scope.LabStaffID) {
		assert.Equal(t, staffID, *scope.LabStaffID)
	}

	// No rule for appointments: empty set, not an error.
	scope = ScopeFor(p, ResourceAppointment)
	assert.True(t, scope.Empty)
	assert.False(t, Allows(p, ResourceAppointment, ActionCreate))
	assert.False(t, Allows(p, ResourceBilling, ActionList))
	assert.True(t, ScopeFor(p, ResourceBilling).Empty)
}

func TestPatientOwnProfileScope(t *testing.T) {
	p, _ := patientPrincipal()

	scope := ScopeFor(p, ResourcePatient)
	if assert.NotNil(t, scope.SelfUserID) {
		assert.Equal(t, p.UserID, *scope.SelfUserID)
	}
	assert.True(t, Allows(p, ResourcePatient, ActionUpdate))
	assert.False(t, Allows(p, ResourcePatient, ActionDelete))
}

func TestPermissionMatrix(t *testing.T) {
	admin := adminPrincipal()
	doctor, _ := doctorPrincipal()
	patient, _ := patientPrincipal()
	lab, _ := labPrincipal()

	tests := []struct {
		name string
		p    Principal
		res  Resource
		act  Action
		want bool
	}{
		{"admin user crud", admin, ResourceUser, ActionDelete, true},
		{"doctor cannot touch users", doctor, ResourceUser, ActionRead, false},
		{"patient cannot touch users", patient, ResourceUser, ActionList, false},
		{"lab cannot touch users", lab, ResourceUser, ActionList, false},

		{"doctor reads departments", doctor, ResourceDepartment, ActionRead, true},
		{"doctor cannot create departments", doctor, ResourceDepartment, ActionCreate, false},
		{"admin creates departments", admin, ResourceDepartment, ActionCreate, true},

		{"doctor updates own profile", doctor, ResourceDoctor, ActionUpdate, true},
		{"patient reads doctors", patient, ResourceDoctor, ActionList, true},
		{"patient cannot update doctors", patient, ResourceDoctor, ActionUpdate, false},

		{"doctor reads patients", doctor, ResourcePatient, ActionList, true},
		{"doctor cannot update patients", doctor, ResourcePatient, ActionUpdate, false},
		{"admin updates patients", admin, ResourcePatient, ActionUpdate, true},
		{"lab reads patients", lab, ResourcePatient, ActionRead, true},

		{"doctor creates appointments", doctor, ResourceAppointment, ActionCreate, true},
		{"patient creates appointments", patient, ResourceAppointment, ActionCreate, true},
		{"lab denied appointments", lab, ResourceAppointment, ActionUpdate, false},

		{"doctor creates prescriptions", doctor, ResourcePrescription, ActionCreate, true},
		{"patient reads prescriptions", patient, ResourcePrescription, ActionRead, true},
		{"patient cannot create prescriptions", patient, ResourcePrescription, ActionCreate, false},
		{"lab denied prescriptions", lab, ResourcePrescription, ActionList, false},

		{"lab creates lab tests", lab, ResourceLabTest, ActionCreate, true},
		{"doctor updates lab tests", doctor, ResourceLabTest, ActionUpdate, true},
		{"patient reads lab tests", patient, ResourceLabTest, ActionRead, true},
		{"patient cannot update lab tests", patient, ResourceLabTest, ActionUpdate, false},

		{"admin full billing", admin, ResourceBilling, ActionCreate, true},
		{"patient reads billing", patient, ResourceBilling, ActionRead, true},
		{"patient cannot create billing", patient, ResourceBilling, ActionCreate, false},
		{"doctor denied billing", doctor, ResourceBilling, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(tt.p, tt.res, tt.act))
		})
	}
}
