// Package auth guards HTTP routes behind the external user service. Token
// verification is delegated entirely to that service; this package only
// extracts the bearer token and attaches the verified identity to the request.
package auth

import (
	"context"
	"errors"
)

// Identity describes the authenticated caller as reported by the user service.
type Identity struct {
	ID       string
	Username string
	Email    string
	Name     string
}

// ErrInvalidToken covers missing, expired, or rejected tokens. Upstream
// failures map to the same error: an unverifiable token is an invalid one.
var ErrInvalidToken = errors.New("invalid or unverifiable token")

// TokenVerifier resolves a bearer token into an identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
