package auth

import (
	"context"
	"errors"

	"github.com/retailhub/orders-backend/internal/modules/auth/identity"
)

var (
	ErrInvalidCredentials = errors.New("failed to authorize")
	ErrInvalidToken       = errors.New("invalid token")
)

// Identity is the authenticated caller of a request. It replaces ambient
// framework state: handlers read it from the request context explicitly.
type Identity = identity.Identity

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and returns a signed session token.
	// Inactive users are refused.
	Login(ctx context.Context, email, password string) (string, error)

	// Authenticate resolves a session token to the caller's identity.
	Authenticate(ctx context.Context, token string) (Identity, error)
}

// WithIdentity returns a context carrying the caller's identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return identity.WithIdentity(ctx, id)
}

// FromContext extracts the caller's identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	return identity.FromContext(ctx)
}
