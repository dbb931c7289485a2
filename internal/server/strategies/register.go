package strategies

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/dmitrijs2005/arabica/internal/server/password"
	"github.com/dmitrijs2005/arabica/internal/server/repositories/users"
)

type RegisterStrategy struct {
	users  users.Repository
	hasher password.Hasher
	logger logging.Logger
}

func NewRegisterStrategy(u users.Repository, h password.Hasher, l logging.Logger) *RegisterStrategy {
	return &RegisterStrategy{users: u, hasher: h, logger: l.With("module", "register_strategy")}
}

func (s *RegisterStrategy) Kind() Kind { return Register }

// Authenticate creates a user with an empty session list. The existence probe
// rejects the common case early; the store's unique index settles races, and
// both paths surface as common.ErrDuplicateIdentity.
func (s *RegisterStrategy) Authenticate(ctx context.Context, creds Credentials) (*models.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreFailure, err)
	}
	if exists {
		s.logger.Info(ctx, "Registration rejected, email taken", "email", creds.Email)
		return nil, common.ErrDuplicateIdentity
	}

	// hashing happens between store calls, no connection is held here
	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        creds.Email,
		PasswordHash: hash,
		Name:         creds.Name,
		Sessions:     []models.Session{},
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			s.logger.Info(ctx, "Registration lost race on email", "email", creds.Email)
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStoreFailure, err)
	}

	return user, nil
}
