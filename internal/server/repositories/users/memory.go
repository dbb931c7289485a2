package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Callers always receive
// copies, never the stored value.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, common.ErrDuplicateIdentity
	}

	stored := user.Clone()
	stored.ID = uuid.NewString()
	now := r.now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	return stored.Clone(), nil
}

func (r *MemoryRepository) AddSession(ctx context.Context, userID string, s models.Session) (*models.User, error) {
	return r.mutate(ctx, userID, func(u *models.User) {
		u.Sessions = append(u.Sessions, s)
	})
}

func (r *MemoryRepository) RemoveSessions(ctx context.Context, userID string, token string) (*models.User, error) {
	return r.mutate(ctx, userID, func(u *models.User) {
		u.Sessions = withoutToken(u.Sessions, token)
	})
}

func (r *MemoryRepository) mutate(ctx context.Context, userID string, fn func(u *models.User)) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(u)
	u.UpdatedAt = r.now().UTC()
	return u.Clone(), nil
}

// withoutToken filters sessions, keeping order. The result is never nil.
func withoutToken(sessions []models.Session, token string) []models.Session {
	kept := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Token != token {
			kept = append(kept, s)
		}
	}
	return kept
}
