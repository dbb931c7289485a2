package strategies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/dmitrijs2005/arabica/internal/server/password"
	"github.com/dmitrijs2005/arabica/internal/server/repositories/users"
)

// DefaultFailureDelay is the wait imposed before reporting any failed login.
const DefaultFailureDelay = 2 * time.Second

type LoginStrategy struct {
	users  users.Repository
	hasher password.Hasher
	logger logging.Logger
	delay  time.Duration
	wait   func(ctx context.Context, d time.Duration) error
}

func NewLoginStrategy(u users.Repository, h password.Hasher, l logging.Logger, failureDelay time.Duration) *LoginStrategy {
	return &LoginStrategy{
		users:  u,
		hasher: h,
		logger: l.With("module", "login_strategy"),
		delay:  failureDelay,
		wait:   sleepContext,
	}
}

func (s *LoginStrategy) Kind() Kind { return Login }

// Authenticate checks email and password. Unknown email and wrong password
// take the same path: one bcrypt comparison, then the same failure delay.
// They still return different errors so callers can decide how much to tell.
func (s *LoginStrategy) Authenticate(ctx context.Context, creds Credentials) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreFailure, err)
	}

	if user == nil {
		s.hasher.Compare(creds.Password, s.hasher.Dummy())
		s.logger.Info(ctx, "Login failed, unknown email", "email", creds.Email)
		return nil, s.fail(ctx, common.ErrUnknownIdentity)
	}

	if !s.hasher.Compare(creds.Password, user.PasswordHash) {
		s.logger.Info(ctx, "Login failed, password mismatch", "email", creds.Email, "user_id", user.ID)
		return nil, s.fail(ctx, common.ErrBadCredentials)
	}

	return user, nil
}

// fail waits out the failure delay. If the caller goes away first the
// context error is returned instead, wrapping the outcome.
func (s *LoginStrategy) fail(ctx context.Context, outcome error) error {
	if err := s.wait(ctx, s.delay); err != nil {
		return fmt.Errorf("%w: %w", err, outcome)
	}
	return outcome
}

// sleepContext blocks the calling goroutine only, on a timer, until d has
// elapsed or ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
