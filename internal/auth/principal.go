package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated identity bound to a request.
type Principal struct {
	UserID  uuid.UUID
	IsAdmin bool
	Token   string
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal bound by the authentication middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
