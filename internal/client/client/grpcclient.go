package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
	"github.com/dmitrijs2005/arabica/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// rpc is the subset of authrpc.Client used here.
type rpc interface {
	Register(ctx context.Context, in *authrpc.RegisterRequest, opts ...grpc.CallOption) (*authrpc.AuthResponse, error)
	Login(ctx context.Context, in *authrpc.LoginRequest, opts ...grpc.CallOption) (*authrpc.AuthResponse, error)
	Check(ctx context.Context, opts ...grpc.CallOption) (*authrpc.CheckResponse, error)
	Logout(ctx context.Context, opts ...grpc.CallOption) error
	Sessions(ctx context.Context, opts ...grpc.CallOption) (*authrpc.SessionsResponse, error)
	Ping(ctx context.Context, opts ...grpc.CallOption) (*authrpc.PingResponse, error)
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      rpc
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(authrpc.MetadataAuthorization, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = authrpc.NewClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Register(ctx context.Context, email, password, name string) (*authrpc.AuthResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &authrpc.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*authrpc.AuthResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &authrpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Check(ctx context.Context, token string) (*authrpc.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Check(withAccessToken(ctx, token))
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) Logout(ctx context.Context, token string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Logout(withAccessToken(ctx, token)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Sessions(ctx context.Context, token string) ([]authrpc.Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Sessions(withAccessToken(ctx, token))
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Sessions, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Ping(ctx); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.InvalidArgument, codes.AlreadyExists, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	}
	return err
}
