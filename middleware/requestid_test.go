package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webserver/middleware"
)

func TestRequestIDDefaultConfiguration(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(middleware.RequestID())

	var capturedID string
	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetRequestID(r.Context())
		assert.True(t, ok, "Request ID should be present in context")
		capturedID = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, capturedID, w.Header().Get("X-Request-ID"), "Request ID should be in response header")

	parsed, err := uuid.Parse(capturedID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	t.Parallel()

	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]struct{})
	for range 50 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get("X-Request-ID")
		_, dup := seen[id]
		require.False(t, dup, "duplicate request id %s", id)
		seen[id] = struct{}{}
	}
}

func TestRequestIDCustomGeneratorAndHeader(t *testing.T) {
	t.Parallel()

	mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:  func() string { return "custom-123" },
		HeaderName: "X-Trace-ID",
	})

	var captured string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = middleware.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "custom-123", captured)
	assert.Equal(t, "custom-123", w.Header().Get("X-Trace-ID"))
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDUseExisting(t *testing.T) {
	t.Parallel()

	mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotEqual(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

func TestRequestIDSkip(t *testing.T) {
	t.Parallel()

	mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Skip: func(r *http.Request) bool { return r.URL.Path == "/health" },
	})

	var ok bool
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = middleware.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.False(t, ok)
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}
