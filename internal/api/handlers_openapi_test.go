package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestServeOpenAPISpec(t *testing.T) {
	handlers := NewHandlers(&MockTranslateService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/openapi.yaml", nil)
	rec := httptest.NewRecorder()

	handlers.ServeOpenAPISpec(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	require.NotEmpty(t, body)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), "openapi:"))

	var doc struct {
		OpenAPI string                 `yaml:"openapi"`
		Paths   map[string]interface{} `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/api/v1/translate")
	assert.Contains(t, doc.Paths, "/health")
}

func TestServeSwaggerUI(t *testing.T) {
	handlers := NewHandlers(&MockTranslateService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/docs", nil)
	rec := httptest.NewRecorder()

	handlers.ServeSwaggerUI(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	for _, want := range []string{"swagger-ui", "/api/v1/openapi.yaml"} {
		assert.Contains(t, rec.Body.String(), want)
	}
}

func TestOpenAPIRoutes_AreNotRateLimited(t *testing.T) {
	router, store := newTestRouter(t, fixedNow)

	for _, path := range []string{"/api/v1/openapi.yaml", "/api/v1/docs"} {
		for i := 0; i < 15; i++ {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rec.Code, "%s request %d", path, i+1)
		}
	}
	assert.Equal(t, 0, store.Len())
}
