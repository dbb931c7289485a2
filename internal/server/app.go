// Package server wires the arabica authentication backend together.
// It opens the user store, builds the credential strategies and the gate,
// serves REST and gRPC side by side and shuts both down on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/auth"
	"github.com/dmitrijs2005/arabica/internal/server/config"
	"github.com/dmitrijs2005/arabica/internal/server/gate"
	"github.com/dmitrijs2005/arabica/internal/server/password"
	"github.com/dmitrijs2005/arabica/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/arabica/internal/server/rest"
	"github.com/dmitrijs2005/arabica/internal/server/services"
	"github.com/dmitrijs2005/arabica/internal/server/strategies"

	gs "github.com/dmitrijs2005/arabica/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	store      repomanager.RepositoryManager
	httpServer *rest.Server
	grpcServer *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(context.Background(), c, logging.NewJSON(os.Stdout, level))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	hasher, err := password.NewBcrypt(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher init error: %w", err)
	}
	if hasher.Cost() < password.DefaultCost {
		logger.Warn(ctx, "bcrypt cost below recommended value", "cost", hasher.Cost(), "recommended", password.DefaultCost)
	}

	issuer, err := auth.NewIssuer(c.SecretKey, c.TokenIssuer, c.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	store, err := repomanager.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repo := store.Users()
	set := strategies.NewSet(
		strategies.NewRegisterStrategy(repo, hasher, logger),
		strategies.NewLoginStrategy(repo, hasher, logger, c.LoginFailureDelay),
	)
	svc := services.NewAuthService(set, issuer, repo, logger)
	g := gate.New(issuer, repo, logger)

	return &App{
		config: c,
		logger: logger,
		store:  store,
		httpServer: rest.NewServer(c.HTTPAddr, logger, svc, g, rest.Options{
			UniformLoginErrors: c.UniformLoginErrors,
			ShutdownTimeout:    c.ShutdownTimeout,
		}),
		grpcServer: gs.NewGRPCServer(c.GRPCAddr, logger, svc, g, gs.Options{
			UniformLoginErrors: c.UniformLoginErrors,
			ShutdownTimeout:    c.ShutdownTimeout,
		}),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// serve runs one transport. A transport that fails takes the whole app down.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) error {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "Server failed", "server", name, "error", err)
		cancelFunc()
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

// Run serves until ctx is cancelled, a signal arrives or a transport fails.
// The store is closed after both transports have stopped.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		httpErr  error
		grpcErr  error
		closeErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		httpErr = app.serve(ctx, cancelFunc, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		grpcErr = app.serve(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.store.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "Failed to close store", "error", err)
		closeErr = fmt.Errorf("close store: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return errors.Join(httpErr, grpcErr, closeErr)
}
