package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/webserver/middleware"
)

func serveWith(mw func(http.Handler) http.Handler, req *http.Request) *httptest.ResponseRecorder {
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSecurityHeadersRecommended(t *testing.T) {
	t.Parallel()

	w := serveWith(middleware.SecurityHeaders(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "max-age=30, public", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Header().Get("Feature-Policy"), "camera 'none'")
	assert.Contains(t, w.Header().Get("Permissions-Policy"), "fullscreen=(self)")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}

func TestSecurityHeadersStrict(t *testing.T) {
	t.Parallel()

	w := serveWith(middleware.SecurityHeadersWithConfig(middleware.StrictSecurity), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "preload")
}

func TestSecurityHeadersDevelopmentDropsHSTS(t *testing.T) {
	t.Parallel()

	cfg := middleware.BalancedSecurity
	cfg.IsDevelopment = true
	w := serveWith(middleware.SecurityHeadersWithConfig(cfg), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
}

func TestSecurityHeadersSkip(t *testing.T) {
	t.Parallel()

	cfg := middleware.StrictSecurity
	cfg.Skip = func(r *http.Request) bool { return r.URL.Path == "/embed" }
	w := serveWith(middleware.SecurityHeadersWithConfig(cfg), httptest.NewRequest(http.MethodGet, "/embed", nil))

	assert.Empty(t, w.Header().Get("X-Frame-Options"))
}

func TestContentSecurityPolicy(t *testing.T) {
	t.Parallel()

	w := serveWith(middleware.ContentSecurityPolicy(nil), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))

	w = serveWith(middleware.ContentSecurityPolicy(middleware.CSPDirectives{
		"script-src":                {"'self'", "https://cdn.example.com"},
		"default-src":               {"'none'"},
		"upgrade-insecure-requests": nil,
	}), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t,
		"default-src 'none'; script-src 'self' https://cdn.example.com; upgrade-insecure-requests",
		w.Header().Get("Content-Security-Policy"))
}
