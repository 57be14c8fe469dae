// Package policy implements the role-based access and query-scoping rules.
// It is pure decision logic: no I/O, no ambient state. The caller resolves
// the principal's role profile once per request and passes it in.
package policy

import (
	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/model"
)

// Resource identifies an entity type the policy rules over.
type Resource string

const (
	ResourceUser         Resource = "user"
	ResourceDepartment   Resource = "department"
	ResourceDoctor       Resource = "doctor"
	ResourcePatient      Resource = "patient"
	ResourceLabStaff     Resource = "lab_staff"
	ResourceAppointment  Resource = "appointment"
	ResourcePrescription Resource = "prescription"
	ResourceLabTest      Resource = "lab_test"
	ResourceBilling      Resource = "billing"
)

// Action is a requested operation on a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Principal is the authenticated actor. Exactly one of the profile IDs is
// set for a non-admin role; admin carries none.
type Principal struct {
	UserID     uuid.UUID
	Role       model.Role
	DoctorID   *uuid.UUID
	PatientID  *uuid.UUID
	LabStaffID *uuid.UUID
}

// Scope narrows a list or read to the rows the principal may see.
//
// Exactly one interpretation applies:
//   - Unrestricted: no filter (admin, or read-all resources).
//   - Empty: the principal has no rule for this resource. Reads yield an
//     empty set indistinguishable from no rows existing.
//   - Otherwise, every non-nil reference field is an equality filter, and
//     SelfUserID restricts profile resources to the principal's own row.
type Scope struct {
	Unrestricted bool
	Empty        bool
	DoctorID     *uuid.UUID
	PatientID    *uuid.UUID
	LabStaffID   *uuid.UUID
	SelfUserID   *uuid.UUID
}

func unrestricted() Scope { return Scope{Unrestricted: true} }
func empty() Scope        { return Scope{Empty: true} }

// Allows reports whether the principal's role permits the action on the
// resource at all. Row-level narrowing is ScopeFor's job; a scoped write is
// additionally pinned to the principal's own profile by the service layer.
func Allows(p Principal, res Resource, act Action) bool {
	if p.Role == model.RoleAdmin {
		switch res {
		case ResourcePatient:
			// Admin reads and updates patients; patient profiles are only
			// created through registration and only deleted with their user.
			return act == ActionList || act == ActionRead || act == ActionUpdate
		case ResourceDoctor, ResourceLabStaff:
			// Profile rows come from registration, not direct creation.
			return act != ActionCreate
		}
		return true
	}

	switch res {
	case ResourceUser:
		return false

	case ResourceDepartment:
		return act == ActionList || act == ActionRead

	case ResourceDoctor:
		if act == ActionList || act == ActionRead {
			return true
		}
		// A doctor may update their own profile; everyone else reads only.
		return p.Role == model.RoleDoctor && act == ActionUpdate

	case ResourcePatient:
		switch p.Role {
		case model.RoleDoctor, model.RoleLab:
			return act == ActionList || act == ActionRead
		case model.RolePatient:
			return act == ActionList || act == ActionRead || act == ActionUpdate
		}

	case ResourceLabStaff:
		return act == ActionList || act == ActionRead

	case ResourceAppointment:
		switch p.Role {
		case model.RoleDoctor, model.RolePatient:
			return true
		}

	case ResourcePrescription:
		switch p.Role {
		case model.RoleDoctor:
			return true
		case model.RolePatient:
			return act == ActionList || act == ActionRead
		}

	case ResourceLabTest:
		switch p.Role {
		case model.RoleDoctor, model.RoleLab:
			return true
		case model.RolePatient:
			return act == ActionList || act == ActionRead
		}

	case ResourceBilling:
		return p.Role == model.RolePatient && (act == ActionList || act == ActionRead)
	}

	return false
}

// ScopeFor returns the filter narrowing list/read results for the
// principal on the resource. Admin always gets the unfiltered set.
func ScopeFor(p Principal, res Resource) Scope {
	if p.Role == model.RoleAdmin {
		return unrestricted()
	}

	switch res {
	case ResourceUser:
		return empty()

	case ResourceDepartment, ResourceLabStaff:
		return unrestricted()

	case ResourceDoctor:
		return unrestricted()

	case ResourcePatient:
		if p.Role == model.RolePatient {
			return Scope{SelfUserID: &p.UserID}
		}
		return unrestricted()

	case ResourceAppointment:
		switch p.Role {
		case model.RoleDoctor:
			return Scope{DoctorID: p.DoctorID}
		case model.RolePatient:
			return Scope{PatientID: p.PatientID}
		}
		return empty()

	case ResourcePrescription:
		switch p.Role {
		case model.RoleDoctor:
			return Scope{DoctorID: p.DoctorID}
		case model.RolePatient:
			return Scope{PatientID: p.PatientID}
		}
		return empty()

	case ResourceLabTest:
		switch p.Role {
		case model.RoleDoctor:
			return Scope{DoctorID: p.DoctorID}
		case model.RolePatient:
			return Scope{PatientID: p.PatientID}
		case model.RoleLab:
			return Scope{LabStaffID: p.LabStaffID}
		}
		return empty()

	case ResourceBilling:
		if p.Role == model.RolePatient {
			return Scope{PatientID: p.PatientID}
		}
		return empty()
	}

	return empty()
}
