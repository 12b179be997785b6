// Package shared carries request-scoped values crossing package boundaries.
package shared

import "context"

// Identity describes the caller as established by the fronting auth proxy.
// Authentication itself is the proxy's job; this service only consumes the
// verified tenant and role headers it injects.
type Identity struct {
	TenantID   int64
	Role       string
	CustomerID int64
}

type identityKey struct{}

// ContextWithIdentity attaches the caller identity to the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, zero when unset.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}
