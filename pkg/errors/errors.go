package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindPermission
	KindNotFound
	KindConflict
	KindProfileIntegrity
	KindInternal
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation reports invalid input naming the offending field.
func Validation(field, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
		Field:   field,
	}
}

// Authentication reports bad credentials. The message is always generic;
// callers must not leak which credential was wrong.
func Authentication() *AppError {
	return &AppError{
		Kind:    KindAuthentication,
		Message: "invalid credentials",
	}
}

// Permission reports a role policy denial without revealing whether the
// target exists.
func Permission() *AppError {
	return &AppError{
		Kind:    KindPermission,
		Message: "permission denied",
	}
}

// NotFound reports a missing or out-of-scope resource. The two cases are
// indistinguishable to the caller.
func NotFound(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Conflict reports a state conflict, e.g. deleting a department that
// still has doctors assigned.
func Conflict(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
	}
}

// ProfileIntegrity reports a principal whose role implies a profile that
// does not exist. This is a server-side data fault, never caller input.
func ProfileIntegrity(role string, err error) *AppError {
	return &AppError{
		Kind:    KindProfileIntegrity,
		Message: fmt.Sprintf("missing %s profile", role),
		Err:     err,
	}
}

// Internal wraps an unexpected failure.
func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// KindOf extracts the Kind of err, or KindInternal if err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
