package middleware_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webserver/middleware"
)

func largeBody() http.Handler {
	body := strings.Repeat("websocket router ", 512)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, body)
	})
}

func TestCompressGzipsLargeResponses(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	middleware.Compress()(largeBody()).ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(plain), "websocket router "))
}

func TestCompressRespectsAcceptEncoding(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	middleware.Compress()(largeBody()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestCompressSkip(t *testing.T) {
	t.Parallel()

	mw := middleware.CompressWithConfig(middleware.CompressConfig{
		Skip: func(r *http.Request) bool { return true },
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	mw(largeBody()).ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestCompressInvalidLevelPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		middleware.CompressWithConfig(middleware.CompressConfig{Level: 42})
	})
}
