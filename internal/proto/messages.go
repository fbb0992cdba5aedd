package proto

import "time"

// Request messages carry validate tags checked by the transports before a
// request reaches the auth engine. The same messages are the HTTP API's
// JSON bodies.

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type BiometricLoginRequest struct {
	BiometricKey string `json:"biometric_key" validate:"required,max=512"`
}

// AddBiometricKeyRequest is authenticated by the session token; the user is
// never named in the body.
type AddBiometricKeyRequest struct {
	BiometricKey string `json:"biometric_key" validate:"required,max=512"`
}

type MeRequest struct{}

// User is the public view of an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse answers every call that signs a user in.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

type MeResponse struct {
	User *User `json:"user"`
}
