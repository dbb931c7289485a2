// Package common contains shared constants and sentinel errors used across
// arabica components.
package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key that
// carries the session token.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the only accepted Authorization scheme.
const BearerScheme = "Bearer"

// PoweredBy is sent in the X-Powered-By header of every HTTP response.
const PoweredBy = "arabica"
