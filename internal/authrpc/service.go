// Package authrpc describes the arabica.auth.v1.AuthService gRPC service.
// Messages travel as protobuf using the auth.proto descriptors built in
// schema.go, so the default gRPC codec serves them.
package authrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "arabica.auth.v1.AuthService"

// Full method names, as seen by interceptors.
const (
	MethodRegister = "/" + ServiceName + "/Register"
	MethodLogin    = "/" + ServiceName + "/Login"
	MethodCheck    = "/" + ServiceName + "/Check"
	MethodLogout   = "/" + ServiceName + "/Logout"
	MethodSessions = "/" + ServiceName + "/Sessions"
	MethodPing     = "/" + ServiceName + "/Ping"
)

// MetadataAuthorization is the metadata key carrying "Bearer <token>".
const MetadataAuthorization = "authorization"

type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	Check(context.Context, *emptypb.Empty) (*CheckResponse, error)
	Logout(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Sessions(context.Context, *emptypb.Empty) (*SessionsResponse, error)
	Ping(context.Context, *emptypb.Empty) (*PingResponse, error)
}

// UnimplementedAuthServiceServer answers every method with codes.Unimplemented.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedAuthServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAuthServiceServer) Check(context.Context, *emptypb.Empty) (*CheckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Check not implemented")
}

func (UnimplementedAuthServiceServer) Logout(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}

func (UnimplementedAuthServiceServer) Sessions(context.Context, *emptypb.Empty) (*SessionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Sessions not implemented")
}

func (UnimplementedAuthServiceServer) Ping(context.Context, *emptypb.Empty) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func unary[Req, Resp any](name string, req wire[Req], resp wire[Resp], call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	serve := func(srv any, ctx context.Context, in proto.Message) (any, error) {
		out, err := call(srv.(AuthServiceServer), ctx, req.decode(in))
		if err != nil {
			return nil, err
		}
		return resp.encode(out), nil
	}
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := req.new()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return serve(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, m any) (any, error) {
				return serve(srv, ctx, m.(proto.Message))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", registerWire, authWire, AuthServiceServer.Register),
		unary("Login", loginWire, authWire, AuthServiceServer.Login),
		unary("Check", emptyWire, checkWire, AuthServiceServer.Check),
		unary("Logout", emptyWire, emptyWire, AuthServiceServer.Logout),
		unary("Sessions", emptyWire, sessionsWire, AuthServiceServer.Sessions),
		unary("Ping", emptyWire, pingWire, AuthServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
