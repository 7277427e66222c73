// Password verification strategies.
//
// The choice between bcrypt verification and plaintext comparison is made once
// at process start and injected into the auth service, so deployments running
// against a legacy store with plaintext passwords can switch modes without
// touching any call site.
package security

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier abstracts how a submitted password is checked against the
// stored credential, and how new credentials are produced for storage.
type PasswordVerifier interface {
	// Matches reports whether plain corresponds to the stored credential.
	Matches(plain, stored string) bool

	// Hash produces the storable form of a new password.
	Hash(plain string) (string, error)
}

// BcryptVerifier verifies passwords against bcrypt hashes. This is the
// production mode.
type BcryptVerifier struct {
	Cost int
}

// NewBcryptVerifier returns a bcrypt verifier with the configured cost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{Cost: cost}
}

// Matches performs a constant-time bcrypt comparison.
func (v *BcryptVerifier) Matches(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// Hash generates a bcrypt hash of the password.
func (v *BcryptVerifier) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), v.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// PlaintextVerifier compares passwords directly. Exists only for legacy/demo
// deployments whose store already holds plaintext credentials.
type PlaintextVerifier struct{}

// Matches compares in constant time to avoid leaking prefix length.
func (v *PlaintextVerifier) Matches(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) == 1
}

// Hash stores the password as-is.
func (v *PlaintextVerifier) Hash(plain string) (string, error) {
	return plain, nil
}

// VerifierForMode selects the process-wide verification strategy.
// Unrecognized modes fall back to bcrypt.
func VerifierForMode(mode string, cfg *SecurityConfig) PasswordVerifier {
	if mode == "plain" {
		return &PlaintextVerifier{}
	}
	return NewBcryptVerifier(cfg.BcryptCost)
}
