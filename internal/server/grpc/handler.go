package grpc

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	pb "github.com/dmitrijs2005/authkeeper/internal/proto"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, toStatus(err)
	}
	res, err := s.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return toAuthResponse(res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, toStatus(err)
	}
	res, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return toAuthResponse(res), nil
}

func (s *GRPCServer) BiometricLogin(ctx context.Context, req *pb.BiometricLoginRequest) (*pb.AuthResponse, error) {
	if req.BiometricKey == "" {
		// An empty key is a failed login, not a malformed request.
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, toStatus(err)
	}
	res, err := s.auth.BiometricLogin(ctx, req.BiometricKey)
	if err != nil {
		return nil, toStatus(err)
	}
	return toAuthResponse(res), nil
}

func (s *GRPCServer) AddBiometricKey(ctx context.Context, req *pb.AddBiometricKeyRequest) (*pb.AuthResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, toStatus(err)
	}
	res, err := s.auth.AddBiometricKey(ctx, userID, req.BiometricKey)
	if err != nil {
		return nil, toStatus(err)
	}
	return toAuthResponse(res), nil
}

func (s *GRPCServer) Me(ctx context.Context, req *pb.MeRequest) (*pb.MeResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	user, err := s.auth.Me(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.MeResponse{User: toPBUser(user)}, nil
}

// toStatus maps an engine error kind to a gRPC status. Internal causes are
// never sent to the caller.
func toStatus(err error) error {
	switch common.KindOf(err) {
	case common.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case common.KindUnauthorized:
		return status.Error(codes.Unauthenticated, err.Error())
	case common.KindConflict:
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func toAuthResponse(res *services.AuthResult) *pb.AuthResponse {
	return &pb.AuthResponse{
		AccessToken: res.Token,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		User:        toPBUser(res.User),
	}
}

func toPBUser(u *models.User) *pb.User {
	if u == nil {
		return nil
	}
	return &pb.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}
