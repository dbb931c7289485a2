package users

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoClient connects to ARABICA_TEST_MONGO_URI or skips the test.
func mongoClient(t *testing.T) *mongo.Client {
	t.Helper()
	uri := os.Getenv("ARABICA_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ARABICA_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

func TestMongoRepository_Contract(t *testing.T) {
	client := mongoClient(t)

	runContract(t, func(t *testing.T) Repository {
		// random database per subtest, dropped afterwards
		db := client.Database(fmt.Sprint("arabica_test_", time.Now().UnixNano()))
		t.Cleanup(func() { _ = db.Drop(context.Background()) })

		r := NewMongoRepository(db)
		require.NoError(t, r.EnsureIndexes(context.Background()))
		return r
	})
}

func TestMongoRepository_EnsureIndexesIsIdempotent(t *testing.T) {
	client := mongoClient(t)
	db := client.Database(fmt.Sprint("arabica_test_", time.Now().UnixNano()))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	r := NewMongoRepository(db)
	require.NoError(t, r.EnsureIndexes(context.Background()))
	require.NoError(t, r.EnsureIndexes(context.Background()))
}
