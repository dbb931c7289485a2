// Package services contains server-side business logic. AuthService drives
// the session lifecycle: it runs a credential strategy, issues a token and
// records the matching session on the user.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/auth"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/dmitrijs2005/arabica/internal/server/repositories/users"
	"github.com/dmitrijs2005/arabica/internal/server/strategies"
	"github.com/google/uuid"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID string) (*auth.IssuedToken, error)
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	User      models.PublicUser
	Token     string
	ExpiresIn string
	ExpiresAt time.Time
}

// SessionView describes one session without revealing its token.
type SessionView struct {
	ID        string            `json:"id"`
	Client    models.ClientInfo `json:"client"`
	CreatedAt time.Time         `json:"created_at"`
	Current   bool              `json:"current"`
}

type AuthService struct {
	strategies *strategies.Set
	issuer     TokenIssuer
	users      users.Repository
	logger     logging.Logger
	now        func() time.Time
}

func NewAuthService(s *strategies.Set, i TokenIssuer, u users.Repository, l logging.Logger) *AuthService {
	return &AuthService{
		strategies: s,
		issuer:     i,
		users:      u,
		logger:     l.With("module", "auth_service"),
		now:        time.Now,
	}
}

// Register creates the user and opens its first session.
func (s *AuthService) Register(ctx context.Context, creds strategies.Credentials, client models.ClientInfo) (*AuthResult, error) {
	res, err := s.authenticate(ctx, strategies.Register, creds, client)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "User registered", "user_id", res.User.ID, "email", res.User.Email)
	return res, nil
}

// Login verifies credentials and appends a new session. Existing sessions
// of the user stay valid.
func (s *AuthService) Login(ctx context.Context, creds strategies.Credentials, client models.ClientInfo) (*AuthResult, error) {
	res, err := s.authenticate(ctx, strategies.Login, creds, client)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "User logged in", "user_id", res.User.ID)
	return res, nil
}

func (s *AuthService) authenticate(ctx context.Context, kind strategies.Kind, creds strategies.Credentials, client models.ClientInfo) (*AuthResult, error) {
	strategy, err := s.strategies.For(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := strategy.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	session := models.Session{
		ID:        uuid.NewString(),
		Token:     token.Value,
		Client:    client,
		CreatedAt: s.now().UTC(),
	}
	updated, err := s.users.AddSession(ctx, user.ID, session)
	if err != nil {
		s.logger.Error(ctx, "Failed to persist session", "user_id", user.ID, "kind", kind.String(), "error", err)
		return nil, storeFailure(err)
	}

	return &AuthResult{
		User:      updated.Public(),
		Token:     token.Value,
		ExpiresIn: token.ExpiresIn,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// Logout removes the sessions carrying token from user. Logging out twice
// with the same token succeeds both times.
func (s *AuthService) Logout(ctx context.Context, user *models.User, token string) error {
	if _, err := s.users.RemoveSessions(ctx, user.ID, token); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		s.logger.Error(ctx, "Failed to remove session", "user_id", user.ID, "error", err)
		return storeFailure(err)
	}
	s.logger.Info(ctx, "User logged out", "user_id", user.ID)
	return nil
}

// Sessions lists the user's active sessions, marking the one that carries
// currentToken.
func (s *AuthService) Sessions(ctx context.Context, user *models.User, currentToken string) []SessionView {
	views := make([]SessionView, 0, len(user.Sessions))
	for _, ss := range user.Sessions {
		views = append(views, SessionView{
			ID:        ss.ID,
			Client:    ss.Client,
			CreatedAt: ss.CreatedAt,
			Current:   ss.Token == currentToken,
		})
	}
	return views
}

func storeFailure(err error) error {
	if errors.Is(err, common.ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrStoreFailure, err)
}
