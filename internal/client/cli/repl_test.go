package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) call(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) Register(context.Context) error { return f.call("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.call("login")
}
func (f *fakeExec) BiometricLogin(context.Context) error { return f.call("biometric-login") }
func (f *fakeExec) Enroll(context.Context) error         { return f.call("enroll") }
func (f *fakeExec) Me(context.Context) error             { return f.call("me") }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.call("logout")
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &printed
}

func scannerOf(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_Dispatch(t *testing.T) {
	printed := capturePrints(t)
	exec := &fakeExec{failOn: "enroll"}

	runREPL(context.Background(), exec, func() string { return "status" }, scannerOf(
		"help",
		"",
		"register",
		"login",
		"help",
		"enroll",
		"me",
		"bl",
		"biometric-login",
		"logout",
		"foobar",
		"exit",
		"me",
	))

	assert.Equal(t, []string{"register", "login", "enroll", "me", "biometric-login", "biometric-login", "logout"}, exec.calls)
	assert.Contains(t, *printed, "Available commands: register, login, biometric-login, exit")
	assert.Contains(t, *printed, "Available commands: enroll, me, logout, login, biometric-login, register, exit")
	assert.Contains(t, *printed, "Error: enroll failed")
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Contains(t, *printed, "Bye!")
	assert.Contains(t, *printed, "ak status>")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("login"))

	assert.Equal(t, []string{"login"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrints(t)
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, exec, func() string { return "" }, scannerOf("login", "me"))

	assert.Empty(t, exec.calls)
}
