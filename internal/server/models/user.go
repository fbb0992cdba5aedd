// Package models defines server-side data models persisted by the stores.
package models

import "time"

// User is an account known to the server. PasswordHash and BiometricKey are
// credentials: they are never serialized and Public strips them before a
// user leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	BiometricKey string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasBiometricKey reports whether a biometric key is enrolled.
func (u *User) HasBiometricKey() bool {
	return u.BiometricKey != ""
}

// Public returns a copy of u without credential material.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
