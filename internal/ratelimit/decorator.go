package ratelimit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"dogtalk/internal/models"
)

// dailyTierSeconds is the retry hint above which the daily wording is used.
const dailyTierSeconds = 3600

// Throttle messages shown to the user.
const (
	MessagePerMinute = "Too many woofs in a row! The translator needs a minute to catch its breath. Please try again shortly."
	MessageDaily     = "The translator has heard enough barking for today. Please come back tomorrow for more translations."
)

// ThrottleMessage picks the user-facing message tier for a retry hint.
func ThrottleMessage(retryAfterSeconds uint) string {
	if retryAfterSeconds > dailyTierSeconds {
		return MessageDaily
	}
	return MessagePerMinute
}

// SetNoStore marks a response as non-cacheable for browsers, shared caches and
// CDN edges. Responses are personalized per client key.
func SetNoStore(h http.Header) {
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	h.Set("CDN-Cache-Control", "no-store")
	h.Set("Surrogate-Control", "no-store")
}

// NoStore is middleware applying SetNoStore to every response.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetNoStore(w.Header())
		next.ServeHTTP(w, r)
	})
}

// WriteThrottled writes the 429 response for a denied result.
func WriteThrottled(w http.ResponseWriter, res Result) {
	retryAfter := res.RetryAfterSeconds
	if retryAfter < 1 {
		retryAfter = 1
	}

	SetNoStore(w.Header())
	w.Header().Set("Retry-After", strconv.FormatUint(uint64(retryAfter), 10))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	if err := json.NewEncoder(w).Encode(models.NewThrottleResponse(ThrottleMessage(retryAfter))); err != nil {
		slog.Error("Failed to encode throttle response", "error", err)
	}
}
