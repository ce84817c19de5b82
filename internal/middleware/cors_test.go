package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-crm/internal/config"

	"github.com/stretchr/testify/assert"
)

func corsHandler(cfg *config.Config) http.Handler {
	return NewCORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSFallsBackToWildcardWithoutCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.CorsAllowedMethods = []string{"GET", "POST"}
	cfg.Server.CorsAllowedHeaders = []string{"Authorization", "Content-Type"}

	req := httptest.NewRequest(http.MethodGet, "/api/inquiries", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	corsHandler(cfg).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSConfiguredOriginAllowsCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.CorsAllowedOrigins = []string{"https://crm.example.com"}
	cfg.Server.CorsAllowedMethods = []string{"GET", "POST"}
	cfg.Server.CorsAllowedHeaders = []string{"Authorization", "Content-Type"}

	req := httptest.NewRequest(http.MethodGet, "/api/inquiries", nil)
	req.Header.Set("Origin", "https://crm.example.com")
	rec := httptest.NewRecorder()
	corsHandler(cfg).ServeHTTP(rec, req)

	assert.Equal(t, "https://crm.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSExposesContentDisposition(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.CorsAllowedMethods = []string{"GET"}
	cfg.Server.CorsAllowedHeaders = []string{"Authorization"}

	// Download endpoints set Content-Disposition; browsers need it exposed
	// to read the filename cross-origin.
	req := httptest.NewRequest(http.MethodGet, "/api/inquiries/export", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	corsHandler(cfg).ServeHTTP(rec, req)

	assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))
}
