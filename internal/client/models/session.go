// Package models holds the client-side view of an AuthKeeper account.
package models

import "time"

type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}

// Expired reports whether the session token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
