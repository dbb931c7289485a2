// Package rest exposes the authentication service over HTTP with fiber.
//
// Routes:
//
//	GET  /status
//	POST /auth/register
//	POST /auth/login
//	GET  /auth/check     (bearer token)
//	GET  /auth/logout    (bearer token, POST also accepted)
//	GET  /auth/sessions  (bearer token)
package rest

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/gate"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/dmitrijs2005/arabica/internal/server/services"
	"github.com/dmitrijs2005/arabica/internal/server/strategies"
)

// AuthService is the session lifecycle used by the handlers.
type AuthService interface {
	Register(ctx context.Context, creds strategies.Credentials, client models.ClientInfo) (*services.AuthResult, error)
	Login(ctx context.Context, creds strategies.Credentials, client models.ClientInfo) (*services.AuthResult, error)
	Logout(ctx context.Context, user *models.User, token string) error
	Sessions(ctx context.Context, user *models.User, currentToken string) []services.SessionView
}

// Authenticator resolves the caller of a protected route.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*gate.Identity, error)
}

type Options struct {
	UniformLoginErrors bool
	ShutdownTimeout    time.Duration
}

type Server struct {
	address            string
	app                *fiber.App
	service            AuthService
	gate               Authenticator
	logger             logging.Logger
	uniformLoginErrors bool
	shutdownTimeout    time.Duration
}

func NewServer(a string, l logging.Logger, svc AuthService, g Authenticator, opts Options) *Server {
	s := &Server{
		address:            a,
		service:            svc,
		gate:               g,
		logger:             l.With("module", "http_server"),
		uniformLoginErrors: opts.UniformLoginErrors,
		shutdownTimeout:    opts.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "arabica",
		Immutable:             true,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(s.accessLog)
	s.app.Use(s.poweredBy)
	s.app.Use(cors.New(cors.Config{ExposeHeaders: fiber.HeaderAuthorization}))

	s.app.Get("/status", s.status)

	authGroup := s.app.Group("/auth")
	authGroup.Post("/register", s.register)
	authGroup.Post("/login", s.login)
	authGroup.Get("/check", s.requireIdentity, s.check)
	authGroup.Get("/logout", s.requireIdentity, s.logout)
	authGroup.Post("/logout", s.requireIdentity, s.logout)
	authGroup.Get("/sessions", s.requireIdentity, s.sessions)
}

// Run serves HTTP until ctx is cancelled, then shuts down within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(listen)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}
