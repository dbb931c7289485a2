// Package auth issues and verifies the signed session tokens handed to
// clients after register and login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard registered claims plus the user id.
// The id claim is serialized as "id".
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// IssuedToken is a freshly signed token and its lifetime.
type IssuedToken struct {
	Value     string
	ExpiresIn string
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	secret   []byte
	issuer   string
	validity time.Duration
	now      func() time.Time
}

func NewIssuer(secret, issuer string, validity time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", validity)
	}
	return &Issuer{
		secret:   []byte(secret),
		issuer:   issuer,
		validity: validity,
		now:      time.Now,
	}, nil
}

// WithClock replaces the time source used for iat, exp and verification.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue signs a token for userID. Each token carries a random jti, so two
// tokens issued for the same user in the same second still differ.
func (i *Issuer) Issue(userID string) (*IssuedToken, error) {
	now := i.now()
	expires := now.Add(i.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
		UserID: userID,
	})

	value, err := token.SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{Value: value, ExpiresIn: ExpiresInLabel(i.validity), ExpiresAt: expires.Truncate(jwt.TimePrecision)}, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the
// user id the token was issued for. Expired tokens yield
// common.ErrTokenExpired, every other failure common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// ExpiresInLabel renders a validity period the way clients expect it:
// whole days as "1d", otherwise the largest whole unit of h, m or s.
func ExpiresInLabel(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d >= day && d%day == 0:
		return fmt.Sprintf("%dd", d/day)
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return fmt.Sprintf("%ds", int64(d.Round(time.Second)/time.Second))
	}
}
