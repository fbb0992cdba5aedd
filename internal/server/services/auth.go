// Package services contains the server-side business logic. AuthService is
// the authentication decision engine: it turns a credential presentation
// (email and password, or a biometric key) into a verified user and a
// signed session token, and governs biometric enrollment.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned by every successful authentication event. User
// never carries credential material.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

var (
	errInvalidCredentials = common.NewError(common.ErrorUnauthorized, "invalid credentials")
	errUnknownSession     = common.NewError(common.ErrorUnauthorized, "session user not found")
)

// AuthService decides every authentication request. It holds no mutable
// state of its own; uniqueness races are settled by the user store.
type AuthService struct {
	users  users.Repository
	tokens auth.TokenIssuer
	hasher auth.PasswordHasher
	log    logging.Logger
}

func NewAuthService(users users.Repository, tokens auth.TokenIssuer, hasher auth.PasswordHasher, log logging.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		log:    log.With("module", "auth_service"),
	}
}

// Register creates an account for email and signs the new user in.
// A taken email is a conflict; nothing is written in that case.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" {
		return nil, common.NewError(common.ErrorValidation, "email is required")
	}
	if password == "" {
		return nil, common.NewError(common.ErrorValidation, "password is required")
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.log.Info(ctx, "registration rejected", "reason", "email_taken")
		return nil, common.NewError(common.ErrorConflict, "email already registered")
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.internal(ctx, "lookup user by email", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.NewError(common.ErrorValidation, "password is too long")
		}
		return nil, s.internal(ctx, "hash password", err)
	}

	user, err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.log.Info(ctx, "registration rejected", "reason", "email_taken_concurrently")
			return nil, common.NewError(common.ErrorConflict, "email already registered")
		}
		return nil, s.internal(ctx, "create user", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login verifies email and password. An unknown email and a wrong password
// produce the same error and take the same time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			s.log.Info(ctx, "login rejected", "reason", "user_not_found")
			return nil, errInvalidCredentials
		}
		return nil, s.internal(ctx, "lookup user by email", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.log.Info(ctx, "login rejected", "reason", "password_mismatch", "user_id", user.ID)
		return nil, errInvalidCredentials
	}

	return s.issue(ctx, user)
}

// BiometricLogin signs in the holder of key. The empty key never matches.
func (s *AuthService) BiometricLogin(ctx context.Context, key string) (*AuthResult, error) {
	if key == "" {
		s.log.Info(ctx, "biometric login rejected", "reason", "empty_key")
		return nil, errInvalidCredentials
	}

	user, err := s.users.GetUserByBiometricKey(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Info(ctx, "biometric login rejected", "reason", "unknown_key")
			return nil, errInvalidCredentials
		}
		return nil, s.internal(ctx, "lookup user by biometric key", err)
	}

	return s.issue(ctx, user)
}

// AddBiometricKey enrolls key for userID, the subject of a verified session.
// A key that is already enrolled is a conflict, including when userID
// itself holds it.
func (s *AuthService) AddBiometricKey(ctx context.Context, userID, key string) (*AuthResult, error) {
	if key == "" {
		return nil, common.NewError(common.ErrorValidation, "biometric key is required")
	}
	if userID == "" {
		return nil, errUnknownSession
	}

	holder, err := s.users.GetUserByBiometricKey(ctx, key)
	switch {
	case err == nil:
		s.log.Info(ctx, "biometric enrollment rejected", "reason", "key_taken", "user_id", userID, "same_user", holder.ID == userID)
		return nil, common.NewError(common.ErrorConflict, "biometric key already registered")
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.internal(ctx, "lookup user by biometric key", err)
	}

	user, err := s.users.UpdateBiometricKey(ctx, userID, key)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			s.log.Info(ctx, "biometric enrollment rejected", "reason", "key_taken_concurrently", "user_id", userID)
			return nil, common.NewError(common.ErrorConflict, "biometric key already registered")
		case errors.Is(err, common.ErrorNotFound):
			s.log.Warn(ctx, "biometric enrollment rejected", "reason", "session_user_missing", "user_id", userID)
			return nil, errUnknownSession
		default:
			return nil, s.internal(ctx, "update biometric key", err)
		}
	}

	s.log.Info(ctx, "biometric key enrolled", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Me returns the public view of the session user.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errUnknownSession
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errUnknownSession
		}
		return nil, s.internal(ctx, "lookup user by id", err)
	}
	return user.Public(), nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "issue token", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user.Public()}, nil
}

// internal logs the cause and returns an error that does not expose it.
func (s *AuthService) internal(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, op+" failed", "error", err)
	return common.NewError(common.ErrorInternal, op)
}
