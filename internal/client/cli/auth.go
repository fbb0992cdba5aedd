package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getSecret     = GetSecret
)

func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Register(ctx, email, password)
	if err != nil {
		return err
	}
	a.signedIn(s)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.signedIn(s)
	return nil
}

func (a *App) BiometricLogin(ctx context.Context) error {
	key, err := getSecret(a.out, "Biometric key")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	s, err := a.authService.BiometricLogin(ctx, string(key))
	if err != nil {
		return err
	}
	a.signedIn(s)
	return nil
}

// Enroll attaches a biometric key to the signed-in account.
func (a *App) Enroll(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	key, err := getSecret(a.out, "New biometric key")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	if _, err := a.authService.AddBiometricKey(ctx, string(key)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Biometric key enrolled")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id:      %s\nemail:   %s\ncreated: %s\n", u.ID, u.Email, u.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) signedIn(s *models.Session) {
	fmt.Fprintf(a.out, "Signed in as %s (session valid until %s)\n", s.User.Email, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
}

// describe turns client errors into short user-facing messages.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, services.ErrEmptyInput):
		return "input must not be empty"
	default:
		return err.Error()
	}
}
