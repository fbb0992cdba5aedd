package client

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, email string, password []byte) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	BiometricLogin(ctx context.Context, key string) (*models.Session, error)
	AddBiometricKey(ctx context.Context, key string) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	Logout()
}
