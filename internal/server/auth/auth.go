// Package auth holds the credential primitives behind the auth engine:
// session token issuance and verification, and password hashing.
package auth

import "time"

// TokenIssuer mints and verifies stateless bearer tokens. The subject is
// the user id.
type TokenIssuer interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
	// Verify returns the subject of a valid token, common.ErrTokenExpired
	// for an expired one and common.ErrInvalidToken otherwise.
	Verify(token string) (subject string, err error)
}

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
	// CompareDummy costs the same as Compare against a real hash and always
	// fails. Used when there is no user to compare against.
	CompareDummy(password string)
}
