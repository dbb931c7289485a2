package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Repository { return NewMemoryRepository() })
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{Email: "x@example.com"})
	require.NoError(t, err)
	u.Email = "mutated"
	u.Sessions = append(u.Sessions, models.Session{Token: "leak"})

	stored, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", stored.Email)
	assert.Empty(t, stored.Sessions)
}

func TestMemoryRepository_HonorsCancelledContext(t *testing.T) {
	r := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ExistsByEmail(ctx, "x@example.com")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = r.Create(ctx, &models.User{Email: "x@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}
