// Package auth implements per-request session identity for the wiki
// frontend. Identity is carried in a signed HttpOnly cookie and resolved
// once at the router boundary; handlers read an immutable Identity value
// from the request context. An absent Identity means the caller is
// anonymous.
package auth

import "context"

// Identity is the authenticated caller of one request.
type Identity struct {
	Email    string
	FullName string
}

type identityKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentity returns the request identity and whether one is present.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
