package wsrouter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Option configures a Router during creation.
type Option func(*mux)

// WithLogger sets the logger used for rejected upgrades and pipeline failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *mux) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithUpgrader replaces the handshake upgrader.
func WithUpgrader(u *websocket.Upgrader) Option {
	return func(m *mux) {
		if u != nil {
			m.upgrader = u
		}
	}
}

func WithReadBufferSize(size int) Option {
	return func(m *mux) {
		m.upgrader.ReadBufferSize = size
	}
}

func WithWriteBufferSize(size int) Option {
	return func(m *mux) {
		m.upgrader.WriteBufferSize = size
	}
}

func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(m *mux) {
		m.upgrader.HandshakeTimeout = timeout
	}
}

// WithCheckOrigin sets the origin check. The default rejects cross-origin
// requests that carry an Origin header.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(m *mux) {
		m.upgrader.CheckOrigin = fn
	}
}

func WithAllowAnyOrigin() Option {
	return func(m *mux) {
		m.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

func WithSubprotocols(protocols ...string) Option {
	return func(m *mux) {
		m.upgrader.Subprotocols = protocols
	}
}

func WithEnableCompression() Option {
	return func(m *mux) {
		m.upgrader.EnableCompression = true
	}
}

// WithResponseHeader sets extra headers sent with the 101 response.
func WithResponseHeader(header http.Header) Option {
	return func(m *mux) {
		m.responseHeader = header
	}
}

// WithPipelineTimeout bounds the time between the handshake and the route handler
// being reached. When it expires the connection is closed with status 1011 and the
// Context is cancelled with ErrPipelineTimeout. Zero disables the bound.
func WithPipelineTimeout(timeout time.Duration) Option {
	return func(m *mux) {
		m.pipelineTimeout = timeout
	}
}
