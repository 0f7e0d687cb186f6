package exam

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CheckPassword compares a stored credential with a candidate. Stored
// values may be bcrypt hashes (operator-provisioned accounts) or the legacy
// plaintext the seed dataset ships with.
func CheckPassword(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// HashPassword produces a bcrypt hash. Self-service password changes store
// hashes through it; operator tooling can provision them directly.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = 12
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
