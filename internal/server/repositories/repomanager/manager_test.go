package repomanager

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/config"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StoreDriver = driver
	c.StoreTimeout = 250 * time.Millisecond
	return c
}

func TestNew_Memory(t *testing.T) {
	m, err := New(context.Background(), testConfig(config.StoreMemory), logging.Discard())
	require.NoError(t, err)
	defer m.Close(context.Background())

	u, err := m.Users().Create(context.Background(), &models.User{Email: "m@example.com"})
	require.NoError(t, err)

	got, err := m.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "m@example.com", got.Email)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), testConfig("sqlite"), logging.Discard())
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNew_MongoUnreachable(t *testing.T) {
	cfg := testConfig(config.StoreMongo)
	cfg.MongoURI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"

	_, err := New(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)
}
