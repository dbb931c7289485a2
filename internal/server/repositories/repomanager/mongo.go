package repomanager

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepositoryManager owns the MongoDB client.
type MongoRepositoryManager struct {
	client *mongo.Client
	users  *users.MongoRepository
}

// NewMongoRepositoryManager connects, pings and ensures the unique email
// index. connectTimeout bounds the whole startup sequence when positive.
func NewMongoRepositoryManager(ctx context.Context, uri, database string, connectTimeout time.Duration) (*MongoRepositoryManager, error) {
	if connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, connectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	repo := users.NewMongoRepository(client.Database(database))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoRepositoryManager{client: client, users: repo}, nil
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
