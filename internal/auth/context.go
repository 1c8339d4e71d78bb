package auth

import "context"

type principalContextKey struct{}

// WithPrincipal stores the authorized principal in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFrom returns the principal placed by the gate middleware. Without
// one it returns the zero Principal, which no policy admits.
func PrincipalFrom(ctx context.Context) Principal {
	p, _ := ctx.Value(principalContextKey{}).(Principal)
	return p
}
