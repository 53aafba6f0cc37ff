package webserver

import (
	"net"
	"strconv"

	"github.com/dmitrymomot/webserver/core/server"
	"github.com/dmitrymomot/webserver/middleware"
)

// Request logging modes.
const (
	LogOff  = "false"
	LogOn   = "true"
	LogFull = "full"
)

// Config holds the web server settings. Server.Addr is ignored; the listen
// address comes from Addr, or from Host and Port when Addr is empty.
type Config struct {
	Server server.Config

	AppName  string `env:"APP_NAME" envDefault:"webserver"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Addr overrides Host and Port, e.g. "127.0.0.1:0".
	Addr string `env:"BIND_ADDR"`
	Host string `env:"BIND_HOST" envDefault:"0.0.0.0"`
	// Port defaults to 80, or 443 with TLS.
	Port int `env:"BIND_PORT"`

	BodyLimit             int64  `env:"BODY_LIMIT" envDefault:"2097152"`
	CORSDomain            string `env:"CORS_DOMAIN" envDefault:"*"`
	RecommendedHeaders    bool   `env:"USE_RECOMMENDED_HEADERS" envDefault:"true"`
	ContentSecurityPolicy bool   `env:"USE_CSP" envDefault:"false"`
	Compression           bool   `env:"USE_COMPRESSION" envDefault:"true"`
	AutoHandle404         bool   `env:"AUTO_HANDLE_404" envDefault:"true"`
	AutoHandleOptions     bool   `env:"AUTO_HANDLE_OPTIONS" envDefault:"true"`
	// RequestLogging is one of LogOff, LogOn or LogFull.
	RequestLogging string `env:"REQUEST_LOGGING" envDefault:"false"`

	// WSAllowAnyOrigin disables the same-origin check on WebSocket handshakes.
	WSAllowAnyOrigin bool `env:"WS_ALLOW_ANY_ORIGIN" envDefault:"false"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Server:             server.DefaultConfig(),
		AppName:            "webserver",
		Env:                "development",
		LogLevel:           "info",
		Host:               "0.0.0.0",
		BodyLimit:          middleware.DefaultBodyLimit,
		CORSDomain:         "*",
		RecommendedHeaders: true,
		Compression:        true,
		AutoHandle404:      true,
		AutoHandleOptions:  true,
		RequestLogging:     LogOff,
	}
}

// TLS reports whether certificate files are configured.
func (c Config) TLS() bool {
	return c.Server.TLSEnabled()
}

// ListenAddr returns the address the server binds.
func (c Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}

	port := c.Port
	if port == 0 {
		port = 80
		if c.TLS() {
			port = 443
		}
	}

	host := c.Host
	if host == "" {
		host = "0.0.0.0"
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}
