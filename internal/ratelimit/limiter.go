// Package ratelimit provides per-client admission control for the translate
// endpoint. Every client key gets two rolling windows: a short burst window and
// a long daily window. A request is admitted only while both windows are within
// their limits. The package also contains the client identification, the
// throttle response decoration and the HTTP middleware tying them together.
package ratelimit

import (
	"time"

	"dogtalk/internal/models"
)

// Window identifies which rolling window caused a denial.
type Window string

const (
	WindowNone  Window = ""
	WindowShort Window = "short"
	WindowLong  Window = "long"
)

// Limiter defines the admission contract. Implementations must be safe for
// concurrent use.
type Limiter interface {
	// Check records one request for key at now and reports whether it is
	// admitted. It never blocks and never fails.
	Check(key string, now time.Time) Result
}

// Result is the outcome of a single admission check.
type Result struct {
	Allowed           bool
	RetryAfterSeconds uint   // Zero when allowed; at least 1 when denied
	Exceeded          Window // Window that caused the denial, if any
	ShortCount        uint   // Post-increment short window count
	LongCount         uint   // Post-increment long window count
}

// Config holds the window sizes and limits for a Limiter.
type Config struct {
	ShortWindow time.Duration
	ShortLimit  uint
	LongWindow  time.Duration
	LongLimit   uint
}

// DefaultConfig returns the default limits: 12 requests per rolling minute and
// 50 requests per rolling day.
func DefaultConfig() Config {
	return Config{
		ShortWindow: 60 * time.Second,
		ShortLimit:  12,
		LongWindow:  24 * time.Hour,
		LongLimit:   50,
	}
}

// ConfigFromModel converts the service's rate limit settings.
func ConfigFromModel(rc models.RateLimitConfig) Config {
	return Config{
		ShortWindow: rc.ShortWindow(),
		ShortLimit:  uint(rc.ShortLimit),
		LongWindow:  rc.LongWindow(),
		LongLimit:   uint(rc.LongLimit),
	}
}
