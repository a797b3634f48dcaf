package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClient is the key shared by every request that carries no usable
// identity.
const UnknownClient = "unknown"

// DefaultForwardedHeader is the proxy header consulted for the client address.
const DefaultForwardedHeader = "X-Forwarded-For"

// ClientIdentifier derives the rate limit key for a request.
type ClientIdentifier struct {
	// Header is the forwarded-address header to consult. Empty disables it.
	Header string
}

// NewClientIdentifier returns an identifier reading the given header, or
// ignoring forwarded headers altogether when trustForwarded is false.
func NewClientIdentifier(header string, trustForwarded bool) ClientIdentifier {
	if !trustForwarded {
		return ClientIdentifier{}
	}
	if header == "" {
		header = DefaultForwardedHeader
	}
	return ClientIdentifier{Header: header}
}

// Identify returns the left-most forwarded address when present, then the
// transport address, then UnknownClient.
func (c ClientIdentifier) Identify(headers http.Header, remoteAddr string) string {
	if c.Header != "" {
		if fwd := headers.Get(c.Header); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return UnknownClient
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	return remoteAddr
}

// IdentifyRequest is Identify applied to an incoming request.
func (c ClientIdentifier) IdentifyRequest(r *http.Request) string {
	return c.Identify(r.Header, r.RemoteAddr)
}
