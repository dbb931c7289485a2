package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/gate"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/dmitrijs2005/arabica/internal/server/requests"
	"github.com/dmitrijs2005/arabica/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Register(ctx context.Context, req *authrpc.RegisterRequest) (*authrpc.AuthResponse, error) {

	r := requests.RegisterRequest{Email: req.Email, Password: req.Password, Name: req.Name}
	r.Normalize()
	if err := requests.Check(r); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	result, err := s.service.Register(ctx, r.Credentials(), clientInfo(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(result), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *authrpc.LoginRequest) (*authrpc.AuthResponse, error) {

	r := requests.LoginRequest{Email: req.Email, Password: req.Password}
	r.Normalize()
	if err := requests.Check(r); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	result, err := s.service.Login(ctx, r.Credentials(), clientInfo(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(result), nil
}

func (s *GRPCServer) Check(ctx context.Context, _ *emptypb.Empty) (*authrpc.CheckResponse, error) {
	id, ok := gate.IdentityFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return &authrpc.CheckResponse{User: rpcUser(id.User.Public())}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	id, ok := gate.IdentityFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	if err := s.service.Logout(ctx, id.User, id.Token); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Sessions(ctx context.Context, _ *emptypb.Empty) (*authrpc.SessionsResponse, error) {
	id, ok := gate.IdentityFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	views := s.service.Sessions(ctx, id.User, id.Token)
	out := &authrpc.SessionsResponse{Sessions: make([]authrpc.Session, 0, len(views))}
	for _, v := range views {
		out.Sessions = append(out.Sessions, authrpc.Session{
			ID:        v.ID,
			UserAgent: v.Client.UserAgent,
			IP:        v.Client.IP,
			CreatedAt: v.CreatedAt,
			Current:   v.Current,
		})
	}
	return out, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*authrpc.PingResponse, error) {

	return &authrpc.PingResponse{Status: "OK"}, nil

}

// toStatus maps service errors onto gRPC codes. Unknown failures are
// logged and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var verr *requests.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, common.ErrDuplicateIdentity):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateIdentity.Error())
	case errors.Is(err, common.ErrUnknownIdentity):
		if s.uniformLoginErrors {
			return status.Error(codes.Unauthenticated, "invalid email or password")
		}
		return status.Error(codes.Unauthenticated, common.ErrUnknownIdentity.Error())
	case errors.Is(err, common.ErrBadCredentials):
		if s.uniformLoginErrors {
			return status.Error(codes.Unauthenticated, "invalid email or password")
		}
		return status.Error(codes.PermissionDenied, common.ErrBadCredentials.Error())
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthorized")
	}

	s.logger.Error(ctx, "gRPC request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func authResponse(r *services.AuthResult) *authrpc.AuthResponse {
	return &authrpc.AuthResponse{
		User:      rpcUser(r.User),
		Token:     r.Token,
		ExpiresIn: r.ExpiresIn,
		ExpiresAt: r.ExpiresAt,
	}
}

func rpcUser(u models.PublicUser) authrpc.User {
	return authrpc.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func clientInfo(ctx context.Context) models.ClientInfo {
	var info models.ClientInfo
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ua := md.Get("user-agent"); len(ua) > 0 {
			info.UserAgent = ua[0]
		}
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		info.IP = p.Addr.String()
		if host, _, err := net.SplitHostPort(info.IP); err == nil {
			info.IP = host
		}
	}
	return info
}
