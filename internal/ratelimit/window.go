package ratelimit

import "time"

// WindowState is one rolling window: a request count and the instant after
// which the count starts over.
type WindowState struct {
	Count   uint
	ResetAt time.Time
}

// rollAndIncrement starts a new window relative to now when the current one has
// expired, then counts the request. Denied requests are counted too, so a client
// retrying after a denial keeps spending its budget.
func (w *WindowState) rollAndIncrement(now time.Time, d time.Duration) uint {
	if now.After(w.ResetAt) {
		w.Count = 0
		w.ResetAt = now.Add(d)
	}
	w.Count++
	return w.Count
}

// expired reports whether the window would roll on a check at now.
func (w *WindowState) expired(now time.Time) bool {
	return now.After(w.ResetAt)
}

// retryAfterSeconds returns the whole seconds until the window resets, rounded
// up and never below 1.
func (w *WindowState) retryAfterSeconds(now time.Time) uint {
	remaining := w.ResetAt.Sub(now)
	if remaining <= 0 {
		return 1
	}
	secs := uint((remaining + time.Second - 1) / time.Second)
	if secs == 0 {
		return 1
	}
	return secs
}

// Bucket is the per-client state: one short and one long window.
type Bucket struct {
	Short WindowState
	Long  WindowState
}

// expired reports whether both windows have run out, which makes the bucket
// indistinguishable from a fresh one.
func (b *Bucket) expired(now time.Time) bool {
	return b.Short.expired(now) && b.Long.expired(now)
}
