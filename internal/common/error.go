// Package common defines shared constants and sentinel errors used across
// client and server layers of arabica. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrStoreFailure = errors.New("store failure")

	// Request validation.
	ErrValidation = errors.New("validation failed")

	// Credential verification outcomes.
	ErrDuplicateIdentity = errors.New("username or email already taken")
	ErrUnknownIdentity   = errors.New("bad email")
	ErrBadCredentials    = errors.New("passwords do not match")

	// Gate outcome for any request whose credential could not be accepted.
	ErrUnauthenticated = errors.New("unauthorized")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
