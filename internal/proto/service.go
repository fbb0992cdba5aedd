package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "authkeeper.v1.AuthKeeperService"

const (
	AuthKeeperService_Ping_FullMethodName            = "/" + ServiceName + "/Ping"
	AuthKeeperService_Register_FullMethodName        = "/" + ServiceName + "/Register"
	AuthKeeperService_Login_FullMethodName           = "/" + ServiceName + "/Login"
	AuthKeeperService_BiometricLogin_FullMethodName  = "/" + ServiceName + "/BiometricLogin"
	AuthKeeperService_AddBiometricKey_FullMethodName = "/" + ServiceName + "/AddBiometricKey"
	AuthKeeperService_Me_FullMethodName              = "/" + ServiceName + "/Me"
)

// AuthKeeperServiceServer is implemented by the server transport.
type AuthKeeperServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	BiometricLogin(context.Context, *BiometricLoginRequest) (*AuthResponse, error)
	AddBiometricKey(context.Context, *AddBiometricKeyRequest) (*AuthResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
}

// UnimplementedAuthKeeperServiceServer answers every method with
// codes.Unimplemented. Embed it for forward compatibility.
type UnimplementedAuthKeeperServiceServer struct{}

func (UnimplementedAuthKeeperServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedAuthKeeperServiceServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAuthKeeperServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAuthKeeperServiceServer) BiometricLogin(context.Context, *BiometricLoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BiometricLogin not implemented")
}
func (UnimplementedAuthKeeperServiceServer) AddBiometricKey(context.Context, *AddBiometricKeyRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddBiometricKey not implemented")
}
func (UnimplementedAuthKeeperServiceServer) Me(context.Context, *MeRequest) (*MeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Me not implemented")
}

func RegisterAuthKeeperServiceServer(s grpc.ServiceRegistrar, srv AuthKeeperServiceServer) {
	s.RegisterService(&AuthKeeperService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(AuthKeeperServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthKeeperServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthKeeperServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AuthKeeperService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthKeeperServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(AuthKeeperService_Ping_FullMethodName, AuthKeeperServiceServer.Ping)},
		{MethodName: "Register", Handler: unaryHandler(AuthKeeperService_Register_FullMethodName, AuthKeeperServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(AuthKeeperService_Login_FullMethodName, AuthKeeperServiceServer.Login)},
		{MethodName: "BiometricLogin", Handler: unaryHandler(AuthKeeperService_BiometricLogin_FullMethodName, AuthKeeperServiceServer.BiometricLogin)},
		{MethodName: "AddBiometricKey", Handler: unaryHandler(AuthKeeperService_AddBiometricKey_FullMethodName, AuthKeeperServiceServer.AddBiometricKey)},
		{MethodName: "Me", Handler: unaryHandler(AuthKeeperService_Me_FullMethodName, AuthKeeperServiceServer.Me)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authkeeper/v1/authkeeper.proto",
}

// AuthKeeperServiceClient is the client API of the service. Calls use the
// JSON codec unless the caller overrides the content-subtype.
type AuthKeeperServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	BiometricLogin(ctx context.Context, in *BiometricLoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	AddBiometricKey(ctx context.Context, in *AddBiometricKeyRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error)
}

type authKeeperServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthKeeperServiceClient(cc grpc.ClientConnInterface) AuthKeeperServiceClient {
	return &authKeeperServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authKeeperServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, AuthKeeperService_Ping_FullMethodName, in, opts)
}

func (c *authKeeperServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, AuthKeeperService_Register_FullMethodName, in, opts)
}

func (c *authKeeperServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, AuthKeeperService_Login_FullMethodName, in, opts)
}

func (c *authKeeperServiceClient) BiometricLogin(ctx context.Context, in *BiometricLoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, AuthKeeperService_BiometricLogin_FullMethodName, in, opts)
}

func (c *authKeeperServiceClient) AddBiometricKey(ctx context.Context, in *AddBiometricKeyRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, AuthKeeperService_AddBiometricKey_FullMethodName, in, opts)
}

func (c *authKeeperServiceClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error) {
	return invoke[MeResponse](ctx, c.cc, AuthKeeperService_Me_FullMethodName, in, opts)
}
