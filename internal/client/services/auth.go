// Package services contains application services for the AuthKeeper CLI.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// ErrEmptyInput is returned before any network call when a required value
// was not entered.
var ErrEmptyInput = errors.New("value must not be empty")

// AuthService defines the authentication operations the CLI offers.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	BiometricLogin(ctx context.Context, key string) (*models.Session, error)
	AddBiometricKey(ctx context.Context, key string) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	Logout()
	Current() *models.Session
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client  client.Client
	timeout time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	session *models.Session
}

// NewAuthService binds an AuthService to the API client. Every call is
// bounded by timeout.
func NewAuthService(c client.Client, timeout time.Duration) AuthService {
	return &authService{client: c, timeout: timeout, now: time.Now}
}

func (a *authService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.Session, error) {
	if email == "" || len(password) == 0 {
		return nil, ErrEmptyInput
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.remember(a.client.Register(ctx, email, password))
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	if email == "" || len(password) == 0 {
		return nil, ErrEmptyInput
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.remember(a.client.Login(ctx, email, password))
}

func (a *authService) BiometricLogin(ctx context.Context, key string) (*models.Session, error) {
	if key == "" {
		return nil, ErrEmptyInput
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.remember(a.client.BiometricLogin(ctx, key))
}

func (a *authService) AddBiometricKey(ctx context.Context, key string) (*models.Session, error) {
	if a.Current() == nil {
		return nil, client.ErrNotLoggedIn
	}
	if key == "" {
		return nil, ErrEmptyInput
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.remember(a.client.AddBiometricKey(ctx, key))
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	if a.Current() == nil {
		return nil, client.ErrNotLoggedIn
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.client.Me(ctx)
}

func (a *authService) Logout() {
	a.client.Logout()
	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()
}

// Current returns the active session, or nil when signed out or when the
// token has expired.
func (a *authService) Current() *models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session.Expired(a.now()) {
		return nil
	}
	return a.session
}

func (a *authService) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}

// remember keeps a successful session. A failed sign-in leaves the
// previous session untouched.
func (a *authService) remember(s *models.Session, err error) (*models.Session, error) {
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
	return s, nil
}
