package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIdentifier_Identify(t *testing.T) {
	id := NewClientIdentifier("", true)

	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"left-most forwarded entry", "203.0.113.50, 70.41.3.18, 150.172.238.178", "10.0.0.1:1234", "203.0.113.50"},
		{"single forwarded entry", "  198.51.100.9  ", "10.0.0.1:1234", "198.51.100.9"},
		{"empty first entry falls back", " , 70.41.3.18", "10.0.0.1:1234", "10.0.0.1"},
		{"remote addr host", "", "192.168.1.1:12345", "192.168.1.1"},
		{"remote addr ipv6", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr without port", "", "192.168.1.1", "192.168.1.1"},
		{"nothing known", "", "", UnknownClient},
		{"whitespace remote addr", "", "   ", UnknownClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.forwarded != "" {
				h.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, id.Identify(h, tt.remoteAddr))
		})
	}
}

func TestClientIdentifier_UntrustedForwardedHeader(t *testing.T) {
	id := NewClientIdentifier("X-Forwarded-For", false)

	h := http.Header{}
	h.Set("X-Forwarded-For", "203.0.113.50")
	assert.Equal(t, "10.0.0.1", id.Identify(h, "10.0.0.1:9999"))
}

func TestClientIdentifier_CustomHeader(t *testing.T) {
	id := NewClientIdentifier("X-Real-IP", true)

	h := http.Header{}
	h.Set("X-Forwarded-For", "203.0.113.50")
	h.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", id.Identify(h, "10.0.0.1:9999"))
}

func TestClientIdentifier_IdentifyRequest(t *testing.T) {
	id := NewClientIdentifier("", true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.50, 70.41.3.18")

	assert.Equal(t, "203.0.113.50", id.IdentifyRequest(req))
}
