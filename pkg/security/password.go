package security

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
)

// PasswordHasher provides interface for password operations
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new password hasher using bcrypt
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return string(bytes), nil
}

func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// PasswordPolicy validates password strength before hashing.
type PasswordPolicy struct {
	MinLength int
	common    map[string]struct{}
}

// commonPasswords is the deny-list applied case-insensitively. Kept short;
// the store never sees a raw password so this is the only checkpoint.
var commonPasswords = []string{
	"password", "password1", "password123", "passw0rd",
	"12345678", "123456789", "1234567890", "qwerty123",
	"letmein123", "welcome1", "admin123", "iloveyou",
	"sunshine", "princess", "football", "baseball",
	"monkey123", "dragon123", "abc12345", "qwertyuiop",
}

// NewPasswordPolicy creates a policy with the given minimum length.
func NewPasswordPolicy(minLength int) *PasswordPolicy {
	if minLength <= 0 {
		minLength = 8
	}
	common := make(map[string]struct{}, len(commonPasswords))
	for _, p := range commonPasswords {
		common[p] = struct{}{}
	}
	return &PasswordPolicy{MinLength: minLength, common: common}
}

// Validate checks password strength against the policy. identityFields are
// values the password must not closely resemble (username, email, names).
func (p *PasswordPolicy) Validate(password string, identityFields ...string) error {
	if len(password) < p.MinLength {
		return apperrors.Validation("password", "password is too short")
	}

	if isNumeric(password) {
		return apperrors.Validation("password", "password cannot be entirely numeric")
	}

	if _, ok := p.common[strings.ToLower(password)]; ok {
		return apperrors.Validation("password", "password is too common")
	}

	lower := strings.ToLower(password)
	for _, field := range identityFields {
		f := strings.ToLower(strings.TrimSpace(field))
		if len(f) < 4 {
			continue
		}
		// Also match the local part of an email address.
		if at := strings.IndexByte(f, '@'); at > 0 {
			f = f[:at]
		}
		if strings.Contains(lower, f) || strings.Contains(f, lower) {
			return apperrors.Validation("password", "password is too similar to personal information")
		}
	}

	return nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
