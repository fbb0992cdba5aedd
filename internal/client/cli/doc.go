// Package cli provides the interactive AuthKeeper command-line client.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or the context is cancelled. Passwords and biometric keys are read from
// the terminal without echo.
package cli
