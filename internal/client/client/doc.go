// Package client talks to the AuthKeeper gRPC API.
//
// GRPCClient keeps the access token of the last successful sign-in and
// attaches it to every outgoing call through a unary interceptor. Server
// status codes are mapped to the sentinel errors in errors.go so callers
// can match them with errors.Is; the server's message is kept in the
// wrapped text.
package client
