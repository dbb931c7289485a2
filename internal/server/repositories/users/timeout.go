package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/arabica/internal/server/models"
)

// timeoutRepository bounds every call to the wrapped store.
type timeoutRepository struct {
	next    Repository
	timeout time.Duration
}

// WithTimeout wraps r so each call gets its own deadline of d. A
// non-positive d returns r unchanged.
func WithTimeout(r Repository, d time.Duration) Repository {
	if d <= 0 {
		return r
	}
	return &timeoutRepository{next: r, timeout: d}
}

func (r *timeoutRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.ExistsByEmail(ctx, email)
}

func (r *timeoutRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.FindByEmail(ctx, email)
}

func (r *timeoutRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.FindByID(ctx, id)
}

func (r *timeoutRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Create(ctx, user)
}

func (r *timeoutRepository) AddSession(ctx context.Context, userID string, s models.Session) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.AddSession(ctx, userID, s)
}

func (r *timeoutRepository) RemoveSessions(ctx context.Context, userID string, token string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.RemoveSessions(ctx, userID, token)
}
