// Package models - API response types and error handling.
// This file defines all outgoing API response structures.
//
// Response Design Principles:
// - Consistent JSON error envelope for validation and server failures
// - Throttle responses carry exactly one user-facing field
// - RFC3339 timestamps for international compatibility
package models

import (
	"time"
)

// TranslationResponse is returned for an admitted translate request.
type TranslationResponse struct {
	Translation string `json:"translation"` // Text for the typewriter
	Source      string `json:"source"`      // upstream or local
}

// Translation sources
const (
	SourceUpstream = "upstream"
	SourceLocal    = "local"
)

// ThrottleResponse is the body of a 429. The browser shows Error verbatim.
type ThrottleResponse struct {
	Error string `json:"error"`
}

// ErrorResponse provides structured error information.
type ErrorResponse struct {
	Error     string            `json:"error"`                // Error type (always "error")
	Message   string            `json:"message"`              // Human-readable error description
	Code      string            `json:"code,omitempty"`       // Machine-readable error code
	Details   map[string]string `json:"details,omitempty"`    // Field-specific error details
	Timestamp time.Time         `json:"timestamp"`            // Error occurrence time
	RequestID string            `json:"request_id,omitempty"` // Unique request identifier
}

type HealthCheckResponse struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Instance   string                     `json:"instance,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
	Metrics    map[string]interface{}     `json:"metrics,omitempty"`
}

type ComponentHealth struct {
	Status    string                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Health Status Constants
const (
	StatusHealthy = "healthy" // All systems operational
)

// Standard HTTP Error Codes
const (
	ErrorCodeNotFound       = "NOT_FOUND"        // 404: Resource doesn't exist
	ErrorCodeBadRequest     = "BAD_REQUEST"      // 400: Invalid request format
	ErrorCodeValidation     = "VALIDATION_ERROR" // 400: Input validation failed
	ErrorCodeInvalidRequest = "INVALID_REQUEST"  // 405: Invalid request method
	ErrorCodeInternalError  = "INTERNAL_ERROR"   // 500: Server-side error
)

func NewErrorResponse(message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error:     "error",
		Message:   message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

func NewThrottleResponse(message string) *ThrottleResponse {
	return &ThrottleResponse{Error: message}
}

func NewHealthCheckResponse(status string) *HealthCheckResponse {
	return &HealthCheckResponse{
		Status:     status,
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
		Metrics:    make(map[string]interface{}),
	}
}

func (h *HealthCheckResponse) AddComponent(name, status, message string) {
	h.Components[name] = ComponentHealth{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
		Details:   make(map[string]interface{}),
	}
}

func (h *HealthCheckResponse) AddMetric(name string, value interface{}) {
	h.Metrics[name] = value
}
