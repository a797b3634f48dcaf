package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// MemoryLimiter is the in-process dual-window limiter. Each key gets a short and
// a long rolling window stored in a BucketStore. When a sweep interval is set, a
// background goroutine periodically evicts buckets whose windows have both
// expired.
type MemoryLimiter struct {
	cfg   Config
	store *BucketStore

	sweepInterval time.Duration
	now           func() time.Time

	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

// LimiterOption configures a MemoryLimiter.
type LimiterOption func(*MemoryLimiter)

// WithSweepInterval enables periodic eviction of expired buckets.
func WithSweepInterval(d time.Duration) LimiterOption {
	return func(m *MemoryLimiter) { m.sweepInterval = d }
}

// WithClock overrides the time source used by the sweeper.
func WithClock(now func() time.Time) LimiterOption {
	return func(m *MemoryLimiter) { m.now = now }
}

// NewMemoryLimiter creates a limiter over store. A nil store gets a fresh one
// with DefaultShards.
func NewMemoryLimiter(cfg Config, store *BucketStore, opts ...LimiterOption) *MemoryLimiter {
	if store == nil {
		store = NewBucketStore(DefaultShards)
	}
	m := &MemoryLimiter{
		cfg:   cfg,
		store: store,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sweepInterval > 0 {
		go m.cleanup()
	}
	return m
}

// Config returns the limits the limiter enforces.
func (m *MemoryLimiter) Config() Config {
	return m.cfg
}

// Store returns the bucket store backing the limiter.
func (m *MemoryLimiter) Store() *BucketStore {
	return m.store
}

// Check records a request for key at now and decides whether it is admitted.
// The short window takes precedence for the retry hint because it clears first.
func (m *MemoryLimiter) Check(key string, now time.Time) Result {
	var res Result
	m.store.Update(key, func(b *Bucket) {
		res.ShortCount = b.Short.rollAndIncrement(now, m.cfg.ShortWindow)
		res.LongCount = b.Long.rollAndIncrement(now, m.cfg.LongWindow)

		overShort := res.ShortCount > m.cfg.ShortLimit
		overLong := res.LongCount > m.cfg.LongLimit
		res.Allowed = !overShort && !overLong

		switch {
		case overShort:
			res.Exceeded = WindowShort
			res.RetryAfterSeconds = b.Short.retryAfterSeconds(now)
		case overLong:
			res.Exceeded = WindowLong
			res.RetryAfterSeconds = b.Long.retryAfterSeconds(now)
		}
	})
	return res
}

// Close stops the background sweeper. It is safe to call more than once.
func (m *MemoryLimiter) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
}

func (m *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			if removed := m.store.Sweep(m.now()); removed > 0 {
				slog.Debug("Evicted expired rate limit buckets", "removed", removed)
			}
		}
	}
}
