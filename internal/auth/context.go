package auth

import "context"

type contextKey struct{}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok && c != nil
}

// ActorFromContext names who is acting in ctx: the authenticated user's
// email, or "anonymous".
func ActorFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok && c.Email != "" {
		return c.Email
	}
	return "anonymous"
}
