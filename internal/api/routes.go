package api

import (
	"net/http"

	"dogtalk/internal/models"
	"dogtalk/internal/ratelimit"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// RouteOption configures optional route behavior.
type RouteOption func(*mux.Router)

// WithOTelMiddleware adds OpenTelemetry HTTP instrumentation middleware.
func WithOTelMiddleware(serviceName string) RouteOption {
	return func(r *mux.Router) {
		r.Use(otelmux.Middleware(serviceName,
			otelmux.WithFilter(func(r *http.Request) bool {
				return r.URL.Path != "/health" &&
					r.URL.Path != "/api/v1/health" &&
					r.URL.Path != "/api/v1/openapi.yaml" &&
					r.URL.Path != "/api/v1/docs"
			}),
		))
	}
}

// SetupRoutes configures the HTTP routes for the API. rateLimit guards the
// translate endpoint only; a nil rateLimit leaves it unthrottled.
func SetupRoutes(handlers *Handlers, rateLimit mux.MiddlewareFunc, opts ...RouteOption) *mux.Router {
	router := mux.NewRouter()

	for _, opt := range opts {
		opt(router)
	}

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(recoveryMiddleware)
	router.Use(ratelimit.NoStore)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/openapi.yaml", handlers.ServeOpenAPISpec).Methods("GET")
	api.HandleFunc("/docs", handlers.ServeSwaggerUI).Methods("GET")

	router.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")

	// Registered last: a later non-matching route on the same subrouter would
	// clear mux's method-mismatch result and turn a 405 into a 404.
	translateAPI := api.PathPrefix("/translate").Subrouter()
	if rateLimit != nil {
		translateAPI.Use(rateLimit)
	}
	translateAPI.HandleFunc("", handlers.Translate).Methods("POST")

	// mux only runs router middleware for matched routes
	router.MethodNotAllowedHandler = requestIDMiddleware(http.HandlerFunc(methodNotAllowedHandler))
	router.NotFoundHandler = requestIDMiddleware(http.HandlerFunc(notFoundHandler))

	return router
}

// methodNotAllowedHandler handles requests with invalid HTTP methods
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	ratelimit.SetNoStore(w.Header())
	errResp := models.NewErrorResponse("Method not allowed", models.ErrorCodeInvalidRequest)
	errResp.RequestID = RequestIDFromContext(r.Context())
	writeJSON(w, http.StatusMethodNotAllowed, errResp)
}

// notFoundHandler handles requests for unknown paths
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	ratelimit.SetNoStore(w.Header())
	errResp := models.NewErrorResponse("Not found", models.ErrorCodeNotFound)
	errResp.RequestID = RequestIDFromContext(r.Context())
	writeJSON(w, http.StatusNotFound, errResp)
}
