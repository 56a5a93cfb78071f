package repositorycache

import (
	"context"
)

type bypassCacheContextKey struct{}

// WithBypassCache marks the context so read operations skip the cache and go
// straight to persistence. Found records are still written through, so a
// bypassed read doubles as a cache refresh. Useful after out-of-band data
// changes, e.g. a migration run against the database directly.
func WithBypassCache(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, bypassCacheContextKey{}, true)
}

func bypassCacheFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	bypass, ok := ctx.Value(bypassCacheContextKey{}).(bool)
	return ok && bypass
}
