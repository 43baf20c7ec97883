package frontend

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Digester turns credential material into a stored digest and verifies a
// presented password against one.
type Digester interface {
	Digest(email, password string) (string, error)
	Verify(email, password, stored string) bool
}

// LegacyDigester is the historical scheme: hex SHA-1 of "email-password".
// The email acts as a fixed salt; there is no per-account randomness and no
// work factor, so this survives only for compatibility with digests already
// on disk. New deployments should configure the bcrypt scheme instead.
type LegacyDigester struct{}

// Digest returns the hex SHA-1 of email + "-" + password.
func (LegacyDigester) Digest(email, password string) (string, error) {
	sum := sha1.Sum([]byte(email + "-" + password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the digest and compares in constant time.
func (d LegacyDigester) Verify(email, password, stored string) bool {
	computed, _ := d.Digest(email, password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}

// BcryptDigester stores per-account randomly salted, work-factored digests.
// Digests produced by it are incompatible with LegacyDigester's.
type BcryptDigester struct {
	Cost int
}

// Digest hashes the password with bcrypt; the email plays no part since
// bcrypt salts each digest itself.
func (d BcryptDigester) Digest(email, password string) (string, error) {
	cost := d.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("frontend: bcrypt: %w", err)
	}
	return string(out), nil
}

// Verify compares the presented password against the stored bcrypt digest.
func (BcryptDigester) Verify(email, password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
