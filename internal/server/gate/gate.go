// Package gate guards protected operations. A request passes only when its
// bearer token verifies and is still one of its owner's sessions.
package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/logging"
	"github.com/dmitrijs2005/arabica/internal/server/models"
)

// TokenVerifier returns the user id embedded in a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserFinder resolves users by id.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Identity is the authenticated caller of a request.
type Identity struct {
	User  *models.User
	Token string
}

type Gate struct {
	verifier TokenVerifier
	users    UserFinder
	logger   logging.Logger
}

func New(v TokenVerifier, u UserFinder, l logging.Logger) *Gate {
	return &Gate{verifier: v, users: u, logger: l.With("module", "gate")}
}

var errNoToken = errors.New("missing bearer token")

// ExtractBearer returns the token of an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ExtractBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errNoToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", errors.New("authorization scheme must be Bearer")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errNoToken
	}
	return token, nil
}

// Authenticate resolves the caller behind an Authorization header value.
// Every rejection matches common.ErrUnauthenticated; the cause is wrapped
// for logging only.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (*Identity, error) {
	token, err := ExtractBearer(authorization)
	if err != nil {
		return nil, g.reject(ctx, err)
	}

	userID, err := g.verifier.Verify(token)
	if err != nil {
		return nil, g.reject(ctx, err)
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			g.logger.Error(ctx, "Gate user lookup failed", "user_id", userID, "error", err)
			return nil, fmt.Errorf("%w: %w", common.ErrStoreFailure, err)
		}
		return nil, g.reject(ctx, fmt.Errorf("user %s no longer exists", userID))
	}

	if !user.HasSession(token) {
		return nil, g.reject(ctx, fmt.Errorf("token is not an active session of user %s", userID))
	}

	return &Identity{User: user, Token: token}, nil
}

func (g *Gate) reject(ctx context.Context, cause error) error {
	g.logger.Debug(ctx, "Gate rejected request", "reason", cause.Error())
	return fmt.Errorf("%w: %w", common.ErrUnauthenticated, cause)
}

type ctxKey struct{}

// WithIdentity attaches id to ctx for downstream handlers.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity attached by WithIdentity.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
