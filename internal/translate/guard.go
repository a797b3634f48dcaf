package translate

import (
	"golang.org/x/time/rate"
)

// UpstreamGuard caps how often the paid provider is called across all
// clients. Per-client budgets live in the ratelimit package; this is the
// process-wide ceiling on top of them.
type UpstreamGuard struct {
	limiter *rate.Limiter
}

// NewUpstreamGuard creates a guard allowing requestsPerSecond with the given
// burst. A non-positive rate disables the guard.
func NewUpstreamGuard(requestsPerSecond float64, burst int) *UpstreamGuard {
	if requestsPerSecond <= 0 {
		return &UpstreamGuard{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < 1 {
		burst = 1
	}
	return &UpstreamGuard{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow reports whether an upstream call may be made now and consumes a token if so.
func (g *UpstreamGuard) Allow() bool {
	if g == nil {
		return true
	}
	return g.limiter.Allow()
}
