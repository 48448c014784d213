// Package cryptox holds the password hashing scheme used for local accounts.
//
// A stored hash is base64(SHA-256(salt + ":" + password)) with a random
// per-account salt. The format is fixed because existing account rows
// depend on it.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/google/uuid"
)

// NewSalt returns a fresh random salt (a 128-bit UUID in canonical form).
func NewSalt() string {
	return uuid.NewString()
}

// HashPassword computes the printable digest of salt ":" password.
func HashPassword(password []byte, salt string) string {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte{':'})
	h.Write(password)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// VerifyPassword reports whether password hashes to storedHash under salt.
func VerifyPassword(password []byte, salt, storedHash string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}
