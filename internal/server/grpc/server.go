package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/gate"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/dmitrijs2005/arabica/internal/server/services"
	"github.com/dmitrijs2005/arabica/internal/server/strategies"
	"google.golang.org/grpc"
)

type AuthService interface {
	Register(ctx context.Context, creds strategies.Credentials, client models.ClientInfo) (*services.AuthResult, error)
	Login(ctx context.Context, creds strategies.Credentials, client models.ClientInfo) (*services.AuthResult, error)
	Logout(ctx context.Context, user *models.User, token string) error
	Sessions(ctx context.Context, user *models.User, currentToken string) []services.SessionView
}

type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*gate.Identity, error)
}

type Options struct {
	UniformLoginErrors bool
	ShutdownTimeout    time.Duration
}

type GRPCServer struct {
	authrpc.UnimplementedAuthServiceServer
	address            string
	service            AuthService
	gate               Authenticator
	logger             logging.Logger
	uniformLoginErrors bool
	shutdownTimeout    time.Duration
}

func NewGRPCServer(a string, l logging.Logger, svc AuthService, g Authenticator, opts Options) *GRPCServer {
	s := &GRPCServer{
		address:            a,
		logger:             l.With("module", "grpc_server"),
		service:            svc,
		gate:               g,
		uniformLoginErrors: opts.UniformLoginErrors,
		shutdownTimeout:    opts.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}
	return s
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.identityInterceptor))
	authrpc.RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// stop drains in-flight calls, then forces the server down once the
// shutdown timeout passes.
func (s *GRPCServer) stop(srv *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	t := time.NewTimer(s.shutdownTimeout)
	defer t.Stop()
	select {
	case <-stopped:
	case <-t.C:
		srv.Stop()
	}
}
