package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webserver/middleware"
)

// alice:secret
const testHtpasswd = "alice:{SHA}5en6G6MezRroT3XKqkdPOmY/BfQ=\n"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func TestProtectedNilProviderAllows(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	middleware.Protected(nil)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedDenied(t *testing.T) {
	t.Parallel()

	deny := func(r *http.Request) (middleware.AuthResult, error) { return middleware.Deny, nil }

	w := httptest.NewRecorder()
	middleware.Protected(deny)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, "Unauthorized", w.Body.String())
}

func TestProtectedCustomResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		result      middleware.AuthResult
		contentType string
		body        string
	}{
		{"text", middleware.AuthResult{StatusCode: http.StatusForbidden, Message: "go away"}, "text/plain", "go away"},
		{"json", middleware.AuthResult{StatusCode: http.StatusPaymentRequired, Message: map[string]string{"error": "pay"}}, "application/json", `{"error":"pay"}`},
		{"empty", middleware.AuthResult{StatusCode: http.StatusTeapot}, "text/plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			provider := func(r *http.Request) (middleware.AuthResult, error) { return tt.result, nil }

			w := httptest.NewRecorder()
			middleware.Protected(provider)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.result.StatusCode, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestProtectedProviderError(t *testing.T) {
	t.Parallel()

	provider := func(r *http.Request) (middleware.AuthResult, error) {
		return middleware.AuthResult{}, errors.New("backend down")
	}

	w := httptest.NewRecorder()
	middleware.Protected(provider)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHtpasswdProviderFromReader(t *testing.T) {
	t.Parallel()

	provider, err := middleware.HtpasswdProviderFromReader(strings.NewReader(testHtpasswd))
	require.NoError(t, err)
	h := middleware.Protected(provider)(okHandler())

	tests := []struct {
		name string
		user string
		pass string
		set  bool
		want int
	}{
		{"valid", "alice", "secret", true, http.StatusOK},
		{"wrong password", "alice", "nope", true, http.StatusUnauthorized},
		{"unknown user", "bob", "secret", true, http.StatusUnauthorized},
		{"no credentials", "", "", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.set {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHtpasswdProviderFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".htpasswd")
	require.NoError(t, os.WriteFile(path, []byte(testHtpasswd), 0o600))

	provider, err := middleware.HtpasswdProvider(path)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("alice", "secret")
	res, err := provider(req)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	_, err = middleware.HtpasswdProvider(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
