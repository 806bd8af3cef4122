package cache

import "context"

type liveReadKey struct{}

// WithLiveRead marks calls made with ctx as live reads: the call cache skips
// its lookup and goes upstream, refreshing the stored result on success.
func WithLiveRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, liveReadKey{}, true)
}

// IsLiveRead reports whether ctx was marked with WithLiveRead
func IsLiveRead(ctx context.Context) bool {
	live, _ := ctx.Value(liveReadKey{}).(bool)
	return live
}
