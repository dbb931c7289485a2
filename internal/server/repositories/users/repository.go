// Package users persists User records with their embedded sessions.
//
// Three implementations share one contract: an in-memory store for tests and
// local runs, MongoDB (one document per user) and PostgreSQL (sessions in a
// JSONB column). Every session mutation is atomic per user: two concurrent
// AddSession calls on the same user both survive.
package users

import (
	"context"

	"github.com/dmitrijs2005/arabica/internal/server/models"
)

type Repository interface {
	// ExistsByEmail reports whether any user has the given email. It reads no
	// credential material.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindByEmail returns common.ErrorNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID returns common.ErrorNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Create assigns the ID and returns the stored user. A second user with
	// the same email fails with common.ErrDuplicateIdentity.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// AddSession appends s to the user's sessions and returns the updated user.
	AddSession(ctx context.Context, userID string, s models.Session) (*models.User, error)
	// RemoveSessions drops every session whose token equals token. Removing a
	// token that is not present is not an error.
	RemoveSessions(ctx context.Context, userID string, token string) (*models.User, error)
}
