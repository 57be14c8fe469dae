package model

// Role determines visibility and mutation rights for every entity type.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
	RoleLab     Role = "lab"
)

// Valid reports whether r is one of the four declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient, RoleLab:
		return true
	}
	return false
}

// HasProfile reports whether the role implies a 1:1 profile row.
func (r Role) HasProfile() bool {
	return r == RoleDoctor || r == RolePatient || r == RoleLab
}

// User represents an authenticated principal. Role is immutable once the
// profile row exists; there is no migration path between roles.
type User struct {
	Base
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	Phone        string `json:"phone" db:"phone"`
	Role         Role   `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}

// UserFilters represents user search parameters
type UserFilters struct {
	Role     Role   `json:"role" form:"role"`
	IsActive *bool  `json:"is_active" form:"is_active"`
	Search   string `json:"search" form:"search"`
}

// RegisterRequest represents registration parameters
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required,phone"`
	Password  string `json:"password" binding:"required"`
	Role      Role   `json:"role" binding:"required,oneof=admin doctor patient lab"`
}

// UpdateUserRequest represents user update parameters. Role is absent on
// purpose: it cannot change after profile creation.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`
	IsActive  *bool   `json:"is_active"`
}

// RegisterResponse is returned after successful registration. PatientID is
// set only for role=patient so the caller can record their login factor.
type RegisterResponse struct {
	User      *User  `json:"user"`
	PatientID string `json:"patient_id,omitempty"`
}
