// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the work factor used when none is configured.
const DefaultCost = 12

var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher turns plaintext into a stored hash and checks candidates against it.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
	// Dummy returns a valid hash of a random secret. Comparing against it
	// costs the same as a real comparison and never succeeds.
	Dummy() string
}

// Bcrypt is a Hasher with a fixed cost. Hashes are salted, so two calls with
// the same input yield different strings.
type Bcrypt struct {
	cost int

	dummyOnce sync.Once
	dummy     string
}

// NewBcrypt returns a hasher using cost, or DefaultCost when cost is 0.
// The cost is never adjusted: anything outside bcrypt's range is an error.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Bcrypt{cost: cost}, nil
}

// Cost reports the configured work factor.
func (b *Bcrypt) Cost() int { return b.cost }

func (b *Bcrypt) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Compare reports whether plain matches hash. A malformed hash is a mismatch.
func (b *Bcrypt) Compare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (b *Bcrypt) Dummy() string {
	b.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), b.cost)
		if err == nil {
			b.dummy = string(h)
		}
	})
	return b.dummy
}
