package users

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behavior every Repository implementation shares.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	newUser := func(email string) *models.User {
		return &models.User{Email: email, PasswordHash: "$2a$04$hash", Name: "N"}
	}

	t.Run("create assigns id and empty sessions", func(t *testing.T) {
		r := newRepo(t)
		u, err := r.Create(ctx, newUser("a@example.com"))
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.NotNil(t, u.Sessions)
		assert.Empty(t, u.Sessions)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Create(ctx, newUser("dup@example.com"))
		require.NoError(t, err)
		_, err = r.Create(ctx, newUser("dup@example.com"))
		assert.ErrorIs(t, err, common.ErrDuplicateIdentity)
	})

	t.Run("exists and find", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.Create(ctx, newUser("f@example.com"))
		require.NoError(t, err)

		ok, err := r.ExistsByEmail(ctx, "f@example.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = r.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, ok)

		byEmail, err := r.FindByEmail(ctx, "f@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
		assert.Equal(t, "$2a$04$hash", byEmail.PasswordHash)

		byID, err := r.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "f@example.com", byID.Email)
	})

	t.Run("not found", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		_, err = r.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		_, err = r.AddSession(ctx, "not-an-id", models.Session{Token: "t"})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("add and remove sessions", func(t *testing.T) {
		r := newRepo(t)
		u, err := r.Create(ctx, newUser("s@example.com"))
		require.NoError(t, err)

		now := time.Now().UTC().Truncate(time.Millisecond)
		for _, tok := range []string{"t1", "t2", "t1"} {
			_, err = r.AddSession(ctx, u.ID, models.Session{ID: "id-" + tok, Token: tok, CreatedAt: now})
			require.NoError(t, err)
		}

		got, err := r.FindByID(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, got.Sessions, 3)

		after, err := r.RemoveSessions(ctx, u.ID, "t1")
		require.NoError(t, err)
		require.Len(t, after.Sessions, 1, "every session with the token is removed")
		assert.Equal(t, "t2", after.Sessions[0].Token)

		again, err := r.RemoveSessions(ctx, u.ID, "t1")
		require.NoError(t, err, "removing an absent token is a no-op")
		assert.Len(t, again.Sessions, 1)

		last, err := r.RemoveSessions(ctx, u.ID, "t2")
		require.NoError(t, err)
		assert.NotNil(t, last.Sessions)
		assert.Empty(t, last.Sessions)
	})

	t.Run("concurrent appends are not lost", func(t *testing.T) {
		r := newRepo(t)
		u, err := r.Create(ctx, newUser("c@example.com"))
		require.NoError(t, err)

		const n = 25
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := r.AddSession(ctx, u.ID, models.Session{Token: fmt.Sprintf("tok-%d", i)})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := r.FindByID(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, got.Sessions, n)
		for i := 0; i < n; i++ {
			assert.True(t, got.HasSession(fmt.Sprintf("tok-%d", i)))
		}
	})
}
