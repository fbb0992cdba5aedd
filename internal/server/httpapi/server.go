// Package httpapi exposes the auth engine as a JSON API over HTTP using chi.
// Request and response bodies are the internal/proto messages; errors are
// RFC 7807 problem documents.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 16

// AuthService is the part of services.AuthService the transport calls.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	BiometricLogin(ctx context.Context, key string) (*services.AuthResult, error)
	AddBiometricKey(ctx context.Context, userID, key string) (*services.AuthResult, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type Server struct {
	address        string
	auth           AuthService
	tokens         auth.TokenIssuer
	validate       *validation.Validator
	requestTimeout time.Duration
	logger         logging.Logger
}

func NewServer(address string, l logging.Logger, svc AuthService, tokens auth.TokenIssuer, requestTimeout time.Duration) *Server {
	return &Server{
		address:        address,
		auth:           svc,
		tokens:         tokens,
		validate:       validation.New(),
		requestTimeout: requestTimeout,
		logger:         l.With("module", "http_server"),
	}
}

// Routes returns the HTTP handler with the full middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.requestTimeout > 0 {
		r.Use(middleware.Timeout(s.requestTimeout))
	}
	r.Use(secureHeaders())

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/biometric-login", s.handleBiometricLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authN)
			r.Post("/biometric-keys", s.handleAddBiometricKey)
			r.Get("/me", s.handleMe)
		})
	})

	return r
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve handles requests on lis until ctx is done, then shuts down,
// waiting up to five seconds for in-flight requests.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
