// Package grpc exposes the auth engine over gRPC. Messages are the plain Go
// structs of internal/proto carried by its JSON codec.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	pb "github.com/dmitrijs2005/authkeeper/internal/proto"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
	"google.golang.org/grpc"
)

// AuthService is the part of services.AuthService the transport calls.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	BiometricLogin(ctx context.Context, key string) (*services.AuthResult, error)
	AddBiometricKey(ctx context.Context, userID, key string) (*services.AuthResult, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type GRPCServer struct {
	pb.UnimplementedAuthKeeperServiceServer
	address        string
	auth           AuthService
	tokens         auth.TokenIssuer
	validate       *validation.Validator
	requestTimeout time.Duration
	logger         logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, svc AuthService, tokens auth.TokenIssuer, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        address,
		auth:           svc,
		tokens:         tokens,
		validate:       validation.New(),
		requestTimeout: requestTimeout,
		logger:         l.With("module", "grpc_server"),
	}
}

// newServer builds the grpc.Server with the interceptor chain and the
// service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.timeoutInterceptor,
		s.accessTokenInterceptor,
	))
	pb.RegisterAuthKeeperServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
