// Package users provides storage for user accounts: a PostgreSQL
// implementation, an in-memory one for development and tests, and a Redis
// read-through cache that can wrap either.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository is the user store consumed by the auth engine.
//
// Lookups return common.ErrorNotFound when no user matches. Writes that
// would break email or biometric-key uniqueness return
// common.ErrorAlreadyExists; implementations enforce this atomically.
type Repository interface {
	// Create persists a new user. An empty ID is filled with a fresh UUID.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error)
	// UpdateBiometricKey sets the user's biometric key and returns the
	// updated record.
	UpdateBiometricKey(ctx context.Context, userID, key string) (*models.User, error)
}
