package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	pb "github.com/dmitrijs2005/authkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuthKeeperServiceClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the current access token, if any.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient creates a client for endpointURL. Extra dial options are
// appended after the defaults (plaintext transport, token interceptor).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAuthKeeperServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email string, password []byte) (*models.Session, error) {
	resp, err := s.client.Register(ctx, &pb.RegisterRequest{Email: email, Password: string(password)})
	return s.session(resp, err)
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Password: string(password)})
	return s.session(resp, err)
}

func (s *GRPCClient) BiometricLogin(ctx context.Context, key string) (*models.Session, error) {
	resp, err := s.client.BiometricLogin(ctx, &pb.BiometricLoginRequest{BiometricKey: key})
	return s.session(resp, err)
}

// AddBiometricKey enrolls key for the signed-in user and switches to the
// fresh token the server returns.
func (s *GRPCClient) AddBiometricKey(ctx context.Context, key string) (*models.Session, error) {
	if s.token() == "" {
		return nil, ErrNotLoggedIn
	}
	resp, err := s.client.AddBiometricKey(ctx, &pb.AddBiometricKeyRequest{BiometricKey: key})
	return s.session(resp, err)
}

func (s *GRPCClient) Me(ctx context.Context) (*models.User, error) {
	if s.token() == "" {
		return nil, ErrNotLoggedIn
	}
	resp, err := s.client.Me(ctx, &pb.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	u := toUser(resp.User)
	return &u, nil
}

// Logout forgets the access token. Tokens are stateless so the server is
// not involved.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

// session stores the token of a successful auth response.
func (s *GRPCClient) session(resp *pb.AuthResponse, err error) (*models.Session, error) {
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("empty access token in response")
	}

	s.setToken(resp.AccessToken)

	return &models.Session{
		AccessToken: resp.AccessToken,
		ExpiresAt:   resp.ExpiresAt,
		User:        toUser(resp.User),
	}, nil
}

func toUser(u *pb.User) models.User {
	if u == nil {
		return models.User{}
	}
	return models.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
