// Package strategies verifies credentials for an authentication attempt.
//
// The set of strategies is closed: Register creates an identity, Login checks
// one. Both share a single Authenticate signature so transports can pick a
// strategy by kind and treat the outcome uniformly.
package strategies

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/arabica/internal/server/models"
)

// Kind names a credential verification strategy.
type Kind int

const (
	Register Kind = iota + 1
	Login
)

func (k Kind) String() string {
	switch k {
	case Register:
		return "register"
	case Login:
		return "login"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Credentials are the caller-supplied fields of an attempt. Name is only
// read by Register.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// Strategy runs one attempt to a terminal outcome: a user, or an error that
// matches one of the common sentinels. Nothing persists on failure.
type Strategy interface {
	Kind() Kind
	Authenticate(ctx context.Context, creds Credentials) (*models.User, error)
}

// Set holds the two strategies.
type Set struct {
	register Strategy
	login    Strategy
}

func NewSet(register, login Strategy) *Set {
	return &Set{register: register, login: login}
}

// For returns the strategy of the given kind.
func (s *Set) For(k Kind) (Strategy, error) {
	switch k {
	case Register:
		return s.register, nil
	case Login:
		return s.login, nil
	}
	return nil, fmt.Errorf("unknown strategy %s", k)
}
