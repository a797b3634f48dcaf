package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"dogtalk/internal/models"
	"dogtalk/internal/ratelimit"
	"dogtalk/internal/translate"
	"dogtalk/internal/version"
)

// maxTranslateBodyBytes bounds the translate request body.
const maxTranslateBodyBytes = 4 << 10

// Handlers contains HTTP handlers for the dogtalk API
type Handlers struct {
	translator translate.ServiceInterface
	store      *ratelimit.BucketStore
	info       version.Info
	upstream   bool
}

// HandlersOption configures optional handler dependencies.
type HandlersOption func(*Handlers)

// WithBucketStore reports the limiter's bucket count in health checks.
func WithBucketStore(store *ratelimit.BucketStore) HandlersOption {
	return func(h *Handlers) {
		h.store = store
	}
}

// WithVersionInfo sets the build metadata returned by health checks.
func WithVersionInfo(info version.Info) HandlersOption {
	return func(h *Handlers) {
		h.info = info
	}
}

// WithUpstreamEnabled marks the paid provider as configured in health checks.
func WithUpstreamEnabled(enabled bool) HandlersOption {
	return func(h *Handlers) {
		h.upstream = enabled
	}
}

// NewHandlers creates a new handlers instance
func NewHandlers(translator translate.ServiceInterface, opts ...HandlersOption) *Handlers {
	h := &Handlers{
		translator: translator,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Translate handles translation requests. The rate limit middleware has
// already admitted the request by the time it gets here.
// POST /api/v1/translate
func (h *Handlers) Translate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTranslateBodyBytes)

	var req models.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON in request body")
		return
	}

	response, err := h.translator.Translate(r.Context(), &req)
	if err != nil {
		var svcErr *translate.ServiceError
		if errors.As(err, &svcErr) {
			if svcErr.StatusCode >= http.StatusInternalServerError {
				slog.ErrorContext(r.Context(), "Translation failed", "error", err)
			}
			h.writeErrorResponse(w, r, svcErr.StatusCode, svcErr.Code, svcErr.Message)
			return
		}
		slog.ErrorContext(r.Context(), "Translation failed", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, models.ErrorCodeInternalError, "Failed to translate bark")
		return
	}

	if key, ok := ratelimit.ClientKeyFromContext(r.Context()); ok {
		slog.DebugContext(r.Context(), "Translation served", "key", key, "source", response.Source)
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// HealthCheck handles health check requests
// GET /health, GET /api/v1/health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.NewHealthCheckResponse(models.StatusHealthy)
	response.Version = h.info.Version
	response.Instance = h.info.InstanceID

	response.AddComponent("api", models.StatusHealthy, "API is operational")

	if h.store != nil {
		response.AddComponent("ratelimit", models.StatusHealthy, "Rate limiter is operational")
		response.AddMetric("rate_limit_buckets", h.store.Len())
	}

	if h.upstream {
		response.AddComponent("upstream", models.StatusHealthy, "Upstream provider configured")
	} else {
		response.AddComponent("upstream", models.StatusHealthy, "Serving local translations")
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// writeJSONResponse writes a JSON response
func (h *Handlers) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	writeJSON(w, statusCode, data)
}

// writeErrorResponse writes an error envelope tagged with the request ID
func (h *Handlers) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	errorResp := models.NewErrorResponse(message, errorCode)
	errorResp.RequestID = RequestIDFromContext(r.Context())

	h.writeJSONResponse(w, statusCode, errorResp)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already written, so only log
		slog.Error("Error encoding JSON response", "error", err)
	}
}
