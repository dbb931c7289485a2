package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, authrpc.MetadataAuthorization, "Bearer "+token)
}

func TestPing(t *testing.T) {
	c := dialBuf(t, newStackServer(t, "", false))

	resp, err := c.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("status = %q", resp.Status)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	c := dialBuf(t, newStackServer(t, "", false))

	reg, err := c.Register(ctx, &authrpc.RegisterRequest{Email: " ann@x.com ", Password: "secret123", Name: "Ann"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.User.Email != "ann@x.com" || reg.Token == "" || reg.ExpiresIn != "1h" {
		t.Fatalf("unexpected register response: %+v", reg)
	}

	login, err := c.Login(ctx, &authrpc.LoginRequest{Email: "ann@x.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	check, err := c.Check(withToken(ctx, reg.Token))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if check.User.ID != reg.User.ID {
		t.Fatalf("check user = %+v, want id %s", check.User, reg.User.ID)
	}

	list, err := c.Sessions(withToken(ctx, login.Token))
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(list.Sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(list.Sessions))
	}
	current := 0
	for _, ss := range list.Sessions {
		if ss.Current {
			current++
		}
	}
	if current != 1 {
		t.Fatalf("current sessions = %d, want 1", current)
	}

	if err := c.Logout(withToken(ctx, reg.Token)); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := c.Check(withToken(ctx, reg.Token)); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("check after logout: code %v, want Unauthenticated", status.Code(err))
	}
	if _, err := c.Check(withToken(ctx, login.Token)); err != nil {
		t.Fatalf("other session must survive logout: %v", err)
	}
}

func TestWireCarriesTimestampsAndSessionFields(t *testing.T) {
	ctx := context.Background()
	c := dialBuf(t, newStackServer(t, "", false))

	before := time.Now().Add(-time.Second)
	reg, err := c.Register(ctx, &authrpc.RegisterRequest{Email: "ann@x.com", Password: "secret123", Name: "Ann"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.User.Name != "Ann" || reg.User.ID == "" {
		t.Fatalf("user = %+v", reg.User)
	}
	if reg.ExpiresAt.Before(before.Add(time.Hour)) || reg.ExpiresAt.After(time.Now().Add(time.Hour)) {
		t.Fatalf("expires_at = %v, want about an hour from now", reg.ExpiresAt)
	}
	if reg.ExpiresAt.Nanosecond() != 0 {
		t.Fatalf("expires_at = %v, want whole seconds", reg.ExpiresAt)
	}

	list, err := c.Sessions(withToken(ctx, reg.Token))
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(list.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(list.Sessions))
	}
	ss := list.Sessions[0]
	if ss.ID == "" || !ss.Current {
		t.Fatalf("session = %+v, want an id and current", ss)
	}
	if ss.CreatedAt.IsZero() || ss.CreatedAt.Before(before) {
		t.Fatalf("created_at = %v", ss.CreatedAt)
	}
}

func TestErrorCodes(t *testing.T) {
	ctx := context.Background()
	c := dialBuf(t, newStackServer(t, "", false))

	if _, err := c.Register(ctx, &authrpc.RegisterRequest{Email: "ann@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "invalid register",
			call: func() error {
				_, err := c.Register(ctx, &authrpc.RegisterRequest{Email: "nope", Password: "x"})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "duplicate",
			call: func() error {
				_, err := c.Register(ctx, &authrpc.RegisterRequest{Email: "ann@x.com", Password: "secret123"})
				return err
			},
			want: codes.AlreadyExists,
		},
		{
			name: "unknown email",
			call: func() error {
				_, err := c.Login(ctx, &authrpc.LoginRequest{Email: "bob@x.com", Password: "secret123"})
				return err
			},
			want: codes.Unauthenticated,
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := c.Login(ctx, &authrpc.LoginRequest{Email: "ann@x.com", Password: "wrong-pass"})
				return err
			},
			want: codes.PermissionDenied,
		},
		{
			name: "missing token",
			call: func() error {
				_, err := c.Check(ctx)
				return err
			},
			want: codes.Unauthenticated,
		},
		{
			name: "garbage token",
			call: func() error {
				_, err := c.Sessions(withToken(ctx, "garbage"))
				return err
			},
			want: codes.Unauthenticated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(tt.call()); got != tt.want {
				t.Fatalf("code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUniformLoginErrors(t *testing.T) {
	ctx := context.Background()
	c := dialBuf(t, newStackServer(t, "", true))

	if _, err := c.Register(ctx, &authrpc.RegisterRequest{Email: "ann@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknown := c.Login(ctx, &authrpc.LoginRequest{Email: "bob@x.com", Password: "secret123"})
	_, wrong := c.Login(ctx, &authrpc.LoginRequest{Email: "ann@x.com", Password: "wrong-pass"})

	su, sw := status.Convert(unknown), status.Convert(wrong)
	if su.Code() != codes.Unauthenticated || sw.Code() != codes.Unauthenticated {
		t.Fatalf("codes = %v / %v, want Unauthenticated", su.Code(), sw.Code())
	}
	if su.Message() != sw.Message() {
		t.Fatalf("messages differ: %q vs %q", su.Message(), sw.Message())
	}
}
