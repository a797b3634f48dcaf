package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestMiddleware(t *testing.T, cfg Config, next http.Handler) http.Handler {
	t.Helper()
	limiter := NewMemoryLimiter(cfg, nil)
	t.Cleanup(limiter.Close)
	mw := Middleware(limiter, NewClientIdentifier("", true), WithRequestClock(fixedClock(baseTime)))
	return mw(next)
}

func TestMiddleware_AllowedRequest(t *testing.T) {
	var gotKey string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey, _ = ClientKeyFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := newTestMiddleware(t, DefaultConfig(), next)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "192.168.1.1", gotKey)
	assert.Empty(t, rr.Header().Get("Retry-After"))
}

func TestMiddleware_DeniedRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShortLimit = 2
	called := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	})
	handler := newTestMiddleware(t, cfg, next)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	// Third request should be denied
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, 2, called)
	assertNoStore(t, rr.Header())

	retryAfter, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Equal(t, 60, retryAfter)

	var errResp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, MessagePerMinute, errResp["error"])
}

func TestMiddleware_XForwardedForSeparatesClients(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShortLimit = 1
	handler := newTestMiddleware(t, cfg, http.HandlerFunc(okHandler))

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		req.Header.Set("X-Forwarded-For", xff)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.50, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.50, 10.0.0.2"))
	assert.Equal(t, http.StatusOK, send("198.51.100.7, 10.0.0.1"))
}

func TestMiddleware_UnknownClientsShareBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShortLimit = 1
	handler := newTestMiddleware(t, cfg, http.HandlerFunc(okHandler))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", nil)
		req.RemoteAddr = ""
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestMiddleware_DailyMessage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LongLimit = 1
	handler := newTestMiddleware(t, cfg, http.HandlerFunc(okHandler))

	var rr *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", nil)
		req.RemoteAddr = "192.168.1.9:80"
		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "86400", rr.Header().Get("Retry-After"))

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, MessageDaily, errResp["error"])
}
