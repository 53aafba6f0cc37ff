package server_test

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webserver/core/server"
)

func helloHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hello")
	})
}

func get(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestServerListenReportsBoundPort(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	assert.Nil(t, srv.Addr())

	require.NoError(t, srv.Listen())
	addr := srv.Addr()
	require.NotNil(t, addr)
	assert.NotContains(t, addr.String(), ":0")

	// Listen is idempotent.
	require.NoError(t, srv.Listen())
	assert.Equal(t, addr.String(), srv.Addr().String())

	require.NoError(t, srv.Stop())
	assert.Nil(t, srv.Addr())
}

func TestServerServeAndStop(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(2*time.Second))
	require.NoError(t, srv.Listen())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(helloHandler()) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + srv.Addr().String())
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "hello", get(t, http.DefaultClient, "http://"+srv.Addr().String()))

	require.NoError(t, srv.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}

func TestServerServeRequiresListen(t *testing.T) {
	t.Parallel()
	srv := server.New("127.0.0.1:0")
	assert.ErrorIs(t, srv.Serve(helloHandler()), server.ErrNotListening)
}

func TestServerStartReturnsContextError(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx, helloHandler()) }()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, 2*time.Second, 10*time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	require.NoError(t, srv.Stop())
}

func TestServerStartInvalidAddress(t *testing.T) {
	t.Parallel()
	srv := server.New("256.0.0.1:99999")
	assert.Error(t, srv.Start(context.Background(), helloHandler()))
}

func TestServerRunGracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx, helloHandler())() }()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestServerTLS(t *testing.T) {
	t.Parallel()

	certPEM, keyPEM := selfSignedPEM(t)
	tlsCfg, err := server.LoadTLSFromPEM(certPEM, keyPEM)
	require.NoError(t, err)

	srv := server.New("127.0.0.1:0", server.WithTLS(tlsCfg))
	require.NoError(t, srv.Listen())
	go func() { _ = srv.Serve(helloHandler()) }()
	t.Cleanup(func() { _ = srv.Stop() })

	client := &http.Client{Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // self-signed test certificate
	}}

	require.Eventually(t, func() bool {
		resp, err := client.Get("https://" + srv.Addr().String())
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "hello", get(t, client, "https://"+srv.Addr().String()))
}

func TestServerTracksConnections(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithMaxConnections(8))
	require.NoError(t, srv.Listen())
	go func() { _ = srv.Serve(helloHandler()) }()
	t.Cleanup(func() { _ = srv.Stop() })

	assert.Equal(t, 8, srv.MaxConnections())

	transport := &http.Transport{}
	client := &http.Client{Transport: transport}
	assert.Equal(t, "hello", get(t, client, "http://"+srv.Addr().String()))

	// The keep-alive connection stays open.
	assert.Eventually(t, func() bool { return srv.Connections() == 1 }, time.Second, 10*time.Millisecond)

	transport.CloseIdleConnections()
	assert.Eventually(t, func() bool { return srv.Connections() == 0 }, 2*time.Second, 10*time.Millisecond)
}
