package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type contextKey struct{}

// ClientKeyFromContext returns the client key the middleware admitted the
// request under.
func ClientKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(contextKey{}).(string)
	return key, ok
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	now func() time.Time
}

// WithRequestClock overrides the time source used for each check.
func WithRequestClock(now func() time.Time) MiddlewareOption {
	return func(c *middlewareConfig) { c.now = now }
}

// Middleware returns HTTP middleware that admits or throttles each request.
// Admitted requests reach next with the client key in their context; denied
// requests get a 429 from WriteThrottled and never reach next.
func Middleware(limiter Limiter, identifier ClientIdentifier, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := identifier.IdentifyRequest(r)
			res := limiter.Check(key, cfg.now())

			if !res.Allowed {
				slog.Warn("Rate limit exceeded",
					"key", key,
					"window", string(res.Exceeded),
					"short_count", res.ShortCount,
					"long_count", res.LongCount,
					"retry_after", res.RetryAfterSeconds,
				)
				WriteThrottled(w, res)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
