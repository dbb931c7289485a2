package authrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Client calls AuthService over cc.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, req wire[Req], resp wire[Resp], in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := resp.new()
	if err := cc.Invoke(ctx, method, req.encode(in), out, opts...); err != nil {
		return nil, err
	}
	return resp.decode(out), nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke(ctx, c.cc, MethodRegister, registerWire, authWire, in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke(ctx, c.cc, MethodLogin, loginWire, authWire, in, opts)
}

func (c *Client) Check(ctx context.Context, opts ...grpc.CallOption) (*CheckResponse, error) {
	return invoke(ctx, c.cc, MethodCheck, emptyWire, checkWire, &emptypb.Empty{}, opts)
}

func (c *Client) Logout(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke(ctx, c.cc, MethodLogout, emptyWire, emptyWire, &emptypb.Empty{}, opts)
	return err
}

func (c *Client) Sessions(ctx context.Context, opts ...grpc.CallOption) (*SessionsResponse, error) {
	return invoke(ctx, c.cc, MethodSessions, emptyWire, sessionsWire, &emptypb.Empty{}, opts)
}

func (c *Client) Ping(ctx context.Context, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke(ctx, c.cc, MethodPing, emptyWire, pingWire, &emptypb.Empty{}, opts)
}
