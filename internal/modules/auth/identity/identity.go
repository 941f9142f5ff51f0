package identity

import "context"

// Identity is the authenticated caller of a request. It replaces ambient
// framework state: handlers read it from the request context explicitly.
type Identity struct {
	UserID int64
	Email  string
	Type   string
}

type contextKey struct{}

// WithIdentity returns a context carrying the caller's identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the caller's identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
