package security

import (
	"crypto/rand"
	"fmt"
)

// patientIDAlphabet excludes nothing: all uppercase letters and digits are
// valid, ten characters total.
const (
	patientIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	patientIDLength   = 10
)

// GeneratePatientID returns a fresh 10-character uppercase alphanumeric
// patient identifier. Each call draws from crypto/rand; the value is never
// cached or reused across rows.
func GeneratePatientID() (string, error) {
	buf := make([]byte, patientIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = patientIDAlphabet[int(b)%len(patientIDAlphabet)]
	}
	return string(buf), nil
}
