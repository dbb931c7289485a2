// Package repomanager opens the configured user store, prepares its schema
// and hands out the repository used by the services.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/config"
	"github.com/dmitrijs2005/arabica/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Close(ctx context.Context) error
}

// New opens the store named by cfg.StoreDriver. Store calls made through
// Users() are bounded by cfg.StoreTimeout.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	log := logger.With("module", "repomanager", "driver", cfg.StoreDriver)

	var (
		m   RepositoryManager
		err error
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		m = NewInMemoryRepositoryManager()
	case config.StoreMongo:
		m, err = NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout)
	case config.StorePostgres:
		m, err = NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN, cfg.StoreTimeout)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s store init: %w", cfg.StoreDriver, err)
	}

	log.Info(ctx, "User store ready")
	return &boundedManager{RepositoryManager: m, users: users.WithTimeout(m.Users(), cfg.StoreTimeout)}, nil
}

// boundedManager decorates the repository with per-call deadlines.
type boundedManager struct {
	RepositoryManager
	users users.Repository
}

func (m *boundedManager) Users() users.Repository { return m.users }
