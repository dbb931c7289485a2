package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/auth"
	"github.com/dmitrijs2005/arabica/internal/server/gate"
	"github.com/dmitrijs2005/arabica/internal/server/password"
	"github.com/dmitrijs2005/arabica/internal/server/repositories/users"
	"github.com/dmitrijs2005/arabica/internal/server/services"
	"github.com/dmitrijs2005/arabica/internal/server/strategies"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func newStackServer(t *testing.T, addr string, uniform bool) *GRPCServer {
	t.Helper()
	repo := users.NewMemoryRepository()
	hasher, err := password.NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcrypt: %v", err)
	}
	issuer, err := auth.NewIssuer("test-secret", "arabicajs", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	set := strategies.NewSet(
		strategies.NewRegisterStrategy(repo, hasher, nopLogger{}),
		strategies.NewLoginStrategy(repo, hasher, nopLogger{}, 0),
	)
	svc := services.NewAuthService(set, issuer, repo, nopLogger{})
	return NewGRPCServer(addr, nopLogger{}, svc, gate.New(issuer, repo, nopLogger{}), Options{UniformLoginErrors: uniform})
}

// dialBuf serves s over an in-memory listener and returns a client for it.
func dialBuf(t *testing.T, s *GRPCServer) *authrpc.Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := s.newServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return authrpc.NewClient(conn)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newStackServer(t, "127.0.0.1:0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := newStackServer(t, "127.0.0.1:99999", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}
