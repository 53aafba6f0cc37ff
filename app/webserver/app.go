package webserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/webserver/core/config"
	"github.com/dmitrymomot/webserver/core/logger"
	"github.com/dmitrymomot/webserver/core/server"
	"github.com/dmitrymomot/webserver/core/wsrouter"
	"github.com/dmitrymomot/webserver/middleware"
)

// App is an HTTP server with a WebSocket router in front of a chi router.
// Upgrade requests go to the WebSocket router and skip the HTTP middleware;
// everything else goes through the HTTP middleware stack.
type App struct {
	mu      sync.Mutex
	config  Config
	router  chi.Router
	ws      wsrouter.Router
	server  *server.Server
	logger  *slog.Logger
	started bool

	wsOptions   []wsrouter.Option
	middlewares []func(http.Handler) http.Handler
	logSink     func(middleware.LogEntry)
	serveErr    chan error
}

// AppOption configures an App.
type AppOption func(*App) error

// New creates an App from cfg.
func New(cfg Config, opts ...AppOption) (*App, error) {
	switch cfg.RequestLogging {
	case "", LogOff, LogOn, LogFull:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogMode, cfg.RequestLogging)
	}

	app := &App{
		config: cfg,
		logger: logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel))),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	srvCfg := cfg.Server
	srvCfg.Addr = cfg.ListenAddr()
	srv, err := server.NewFromConfig(srvCfg, server.WithLogger(app.logger))
	if err != nil {
		return nil, err
	}
	app.server = srv

	wsOpts := []wsrouter.Option{wsrouter.WithLogger(app.logger.With(logger.Component("wsrouter")))}
	if cfg.WSAllowAnyOrigin {
		wsOpts = append(wsOpts, wsrouter.WithAllowAnyOrigin())
	}
	app.ws = wsrouter.New(append(wsOpts, app.wsOptions...)...)

	app.router = chi.NewRouter()
	app.router.Use(app.httpMiddlewares()...)

	return app, nil
}

// NewFromEnv loads Config from the environment and creates an App.
func NewFromEnv(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// httpMiddlewares returns the HTTP stack in execution order.
func (a *App) httpMiddlewares() []func(http.Handler) http.Handler {
	cfg := a.config

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.AuthorizationDecoder(),
		middleware.BodyLimitWithSize(cfg.BodyLimit),
		middleware.CORS(cfg.CORSDomain),
	}
	if cfg.RecommendedHeaders {
		mws = append(mws, middleware.SecurityHeaders())
	}
	if cfg.ContentSecurityPolicy {
		mws = append(mws, middleware.ContentSecurityPolicy(nil))
	}
	if cfg.Compression {
		mws = append(mws, middleware.Compress())
	}

	switch {
	case a.logSink != nil:
		mws = append(mws, middleware.LoggingWithSink(a.logSink))
	case cfg.RequestLogging == LogFull:
		mws = append(mws, middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:   a.logger,
			LogLevel: slog.LevelDebug,
			Full:     true,
		}))
	case cfg.RequestLogging == LogOn:
		mws = append(mws, middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:   a.logger,
			LogLevel: slog.LevelDebug,
		}))
	}

	return append(mws, a.middlewares...)
}

// HTTP returns the router for plain HTTP routes.
func (a *App) HTTP() chi.Router {
	return a.router
}

// WS returns the WebSocket router.
func (a *App) WS() wsrouter.Router {
	return a.ws
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Config returns the configuration the App was created with.
func (a *App) Config() Config {
	return a.config
}

// Handle registers a WebSocket route.
func (a *App) Handle(pattern string, h wsrouter.HandlerFunc) {
	a.ws.Handle(pattern, h)
}

// Use appends WebSocket middleware.
func (a *App) Use(middlewares ...wsrouter.Middleware) {
	a.ws.Use(middlewares...)
}

// Mount copies the routes of a WebSocket sub-router under prefix.
func (a *App) Mount(prefix string, sub wsrouter.Router) {
	a.ws.Mount(prefix, sub)
}

// Static serves files from dir under prefix.
func (a *App) Static(prefix, dir string) error {
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidStaticPath, prefix)
	}

	fs := http.FileServer(http.Dir(dir))
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		a.router.Handle("/*", fs)
		return nil
	}

	a.router.Handle(prefix+"/*", http.StripPrefix(prefix, fs))
	return nil
}

// Handler returns the composed root handler.
func (a *App) Handler() http.Handler {
	return a.ws.Intercept(a.router)
}

// Start binds the listener and serves in the background. It returns once the
// address is bound. The auto OPTIONS and 404 handlers are registered here so
// they do not shadow routes added before Start.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return ErrAlreadyStarted
	}

	if a.config.AutoHandleOptions {
		a.router.Options("/*", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}
	if a.config.AutoHandle404 {
		a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		})
	}

	if err := a.server.Listen(); err != nil {
		return err
	}

	handler := a.Handler()
	a.serveErr = make(chan error, 1)
	go func() {
		err := a.server.Serve(handler)
		if err != nil {
			a.logger.ErrorContext(ctx, "server stopped with error", logger.Error(err))
		}
		a.serveErr <- err
	}()

	a.started = true
	a.logger.InfoContext(ctx, "web server started",
		logger.Component("webserver"),
		slog.String("url", a.localURL()),
		slog.Int("routes", len(a.ws.Routes())),
	)

	return nil
}

// Stop shuts the server down gracefully and waits for it to exit.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return nil
	}

	err := a.server.Stop()
	serveErr := <-a.serveErr
	a.started = false

	return errors.Join(err, serveErr)
}

// Wait blocks until ctx is done and then stops the server.
func (a *App) Wait(ctx context.Context) error {
	<-ctx.Done()
	return a.Stop()
}

// Healthcheck returns ErrNotStarted unless the server is serving.
func (a *App) Healthcheck(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.started {
		return ErrNotStarted
	}
	return nil
}

// Addr returns the bound address, or nil before Start.
func (a *App) Addr() net.Addr {
	return a.server.Addr()
}

// Connections returns the number of open HTTP connections.
func (a *App) Connections() int64 {
	return a.server.Connections()
}

// LocalURL returns a URL for reaching the server from this host.
// A wildcard bind host is reported as 127.0.0.1.
func (a *App) LocalURL() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.localURL()
}

func (a *App) localURL() string {
	scheme := "http"
	if a.server.TLS() {
		scheme = "https"
	}

	hostport := a.config.ListenAddr()
	if addr := a.server.Addr(); addr != nil {
		hostport = addr.String()
	}

	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return scheme + "://" + hostport
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}

	return scheme + "://" + net.JoinHostPort(host, port)
}

// WithLogger sets the application logger.
func WithLogger(log *slog.Logger) AppOption {
	return func(a *App) error {
		if log == nil {
			return ErrNilLogger
		}
		a.logger = log
		return nil
	}
}

// WithWSOptions passes options to the WebSocket router.
func WithWSOptions(opts ...wsrouter.Option) AppOption {
	return func(a *App) error {
		a.wsOptions = append(a.wsOptions, opts...)
		return nil
	}
}

// WithMiddleware appends HTTP middleware after the built-in stack.
func WithMiddleware(mws ...func(http.Handler) http.Handler) AppOption {
	return func(a *App) error {
		a.middlewares = append(a.middlewares, mws...)
		return nil
	}
}

// WithLogSink sends request log entries to fn instead of the logger.
func WithLogSink(fn func(middleware.LogEntry)) AppOption {
	return func(a *App) error {
		a.logSink = fn
		return nil
	}
}
