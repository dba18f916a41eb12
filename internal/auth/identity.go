// Package auth resolves bearer tokens against the hosted identity provider
// and carries the resulting identity through request contexts.
package auth

import "context"

// Identity is the authentication outcome for a request: either a tenant
// authenticated by the identity provider, or the shared guest identity.
// Guests may read guest-scoped data but every write handler rejects them.
type Identity struct {
	tenantID string
	guest    bool
}

// Authenticated returns the identity for a verified tenant.
func Authenticated(tenantID string) Identity {
	return Identity{tenantID: tenantID}
}

// GuestIdentity returns the fallback identity scoped to the fixed guest tenant.
func GuestIdentity(guestTenantID string) Identity {
	return Identity{tenantID: guestTenantID, guest: true}
}

// TenantID returns the tenant every read and write is scoped by.
func (id Identity) TenantID() string { return id.tenantID }

// IsGuest reports whether the request carries no verified token.
func (id Identity) IsGuest() bool { return id.guest }

type identityContextKey struct{}

// WithContext stores the identity in context.
func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// FromContext extracts the identity from context. A request that never went
// through the middleware resolves to a guest with an empty tenant.
func FromContext(ctx context.Context) Identity {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	if !ok {
		return Identity{guest: true}
	}
	return id
}
