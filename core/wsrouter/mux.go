package wsrouter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/http/httpguts"

	"github.com/dmitrymomot/webserver/core/logger"
)

// entry is a single row of the route table.
type entry struct {
	pattern   string
	handler   HandlerFunc
	mountPath string
}

// mux is the private implementation of Router.
type mux struct {
	mu              sync.RWMutex
	routes          []entry
	index           map[string]int
	middlewares     []Middleware
	upgrader        *websocket.Upgrader
	responseHeader  http.Header
	logger          *slog.Logger
	pipelineTimeout time.Duration
}

func newMux(opts ...Option) *mux {
	m := &mux{
		index: make(map[string]int),
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Handle registers a handler for pattern.
func (m *mux) Handle(pattern string, h HandlerFunc) {
	m.handle(pattern, h, "")
}

// Use appends middleware to the shared pipeline.
func (m *mux) Use(middlewares ...Middleware) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mw := range middlewares {
		if mw == nil {
			panic(fmt.Errorf("%w: nil middleware", ErrNilHandler))
		}
		m.middlewares = append(m.middlewares, mw)
	}
}

// Mount copies the routes of sub into this router under prefix.
// The sub-router's own middleware is applied to its handlers before copying,
// so it runs after this router's middleware.
func (m *mux) Mount(prefix string, sub Router) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, prefix))
	}

	sm, ok := sub.(*mux)
	if !ok {
		panic("wsrouter: can only mount routers created by wsrouter.New")
	}
	if sm == m {
		panic("wsrouter: cannot mount a router onto itself")
	}

	sm.mu.RLock()
	routes := slices.Clone(sm.routes)
	middlewares := slices.Clone(sm.middlewares)
	sm.mu.RUnlock()

	prefix = normalizePrefix(prefix)
	for _, e := range routes {
		h := e.handler
		if len(middlewares) > 0 {
			h = chain(middlewares, h)
		}

		mountPath := prefix
		if e.mountPath != "" {
			mountPath = normalizePrefix(JoinPath(prefix, e.mountPath))
		}

		m.handle(JoinPath(prefix, e.pattern), h, mountPath)
	}
}

// Routes returns all registered routes in table order.
func (m *mux) Routes() []Route {
	m.mu.RLock()
	defer m.mu.RUnlock()

	routes := make([]Route, 0, len(m.routes))
	for _, e := range m.routes {
		routes = append(routes, Route{Pattern: e.pattern, MountPath: e.mountPath})
	}
	return routes
}

// ServeHTTP dispatches upgrade requests and answers anything else with 426.
func (m *mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !IsUpgradeRequest(r) {
		w.Header().Set("Upgrade", "websocket")
		http.Error(w, ErrNotUpgrade.Error(), http.StatusUpgradeRequired)
		return
	}
	m.dispatch(w, r)
}

// Intercept dispatches upgrade requests and passes the rest to next.
func (m *mux) Intercept(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsUpgradeRequest(r) {
			m.dispatch(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Attach wraps the server handler so upgrade requests reach this router.
// A nil srv.Handler is treated as http.DefaultServeMux, matching net/http.
func (m *mux) Attach(srv *http.Server) {
	next := srv.Handler
	if next == nil {
		next = http.DefaultServeMux
	}
	srv.Handler = m.Intercept(next)
}

// IsUpgradeRequest reports whether r asks to switch protocols.
func IsUpgradeRequest(r *http.Request) bool {
	return httpguts.HeaderValuesContainsToken(r.Header["Connection"], "upgrade") &&
		r.Header.Get("Upgrade") != ""
}

func (m *mux) dispatch(w http.ResponseWriter, r *http.Request) {
	u, err := requestURL(r)
	if err != nil {
		m.reject(w, r, fmt.Errorf("%w: %w", ErrMalformedRequest, err))
		return
	}

	pathname := u.EscapedPath()
	if pathname == "" {
		pathname = "/"
	}

	e, params, middlewares, ok := m.lookup(pathname)
	if !ok {
		m.reject(w, r, ErrNoRouteMatch)
		return
	}

	conn, err := m.upgrader.Upgrade(w, r, m.responseHeader)
	if err != nil {
		// The upgrader has already replied with an HTTP error.
		m.logger.WarnContext(r.Context(), "websocket handshake failed",
			logger.Path(pathname),
			logger.Pattern(e.pattern),
			logger.Error(err),
		)
		return
	}

	ctx := newContext(r, conn, pathname, e.pattern, params, flattenQuery(u.Query()))
	defer ctx.cancel(nil)

	m.run(ctx, middlewares, e.handler)
}

// lookup walks the table in registration order and returns the first match
// together with a snapshot of the middleware stack.
func (m *mux) lookup(pathname string) (entry, Params, []Middleware, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.routes {
		if params, ok := Match(pathname, e.pattern); ok {
			return e, params, slices.Clone(m.middlewares), true
		}
	}
	return entry{}, nil, nil, false
}

// run executes the pipeline and closes the connection when it returns.
func (m *mux) run(ctx *Context, middlewares []Middleware, endpoint HandlerFunc) {
	if m.pipelineTimeout > 0 {
		timer := time.AfterFunc(m.pipelineTimeout, func() {
			m.logger.WarnContext(ctx.r.Context(), "websocket pipeline timed out",
				logger.Path(ctx.path),
				logger.Duration(m.pipelineTimeout),
			)
			closeConn(ctx.conn, websocket.CloseInternalServerErr, "Internal Server Error")
			ctx.cancel(ErrPipelineTimeout)
		})
		defer timer.Stop()

		routeHandler := endpoint
		endpoint = func(c *Context) error {
			if !timer.Stop() {
				return ErrPipelineTimeout
			}
			return routeHandler(c)
		}
	}

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			m.logger.ErrorContext(ctx, "panic in websocket pipeline",
				"value", perr.value,
				"stack", string(perr.stack),
				logger.Path(ctx.path),
			)
			m.fail(ctx, perr)
		}
	}()

	if err := chain(middlewares, endpoint)(ctx); err != nil && !isPeerClose(err) {
		m.fail(ctx, err)
		return
	}

	closeConn(ctx.conn, websocket.CloseNormalClosure, "")
}

// fail closes the connection with a protocol error status.
func (m *mux) fail(ctx *Context, err error) {
	var perr PanicError
	timedOut := errors.Is(err, ErrPipelineTimeout) || errors.Is(ctx.Cause(), ErrPipelineTimeout)
	if !timedOut && !errors.As(err, &perr) {
		m.logger.ErrorContext(ctx, "websocket pipeline failed",
			logger.Path(ctx.path),
			logger.Pattern(ctx.pattern),
			logger.Error(err),
		)
	}
	ctx.cancel(err)
	closeConn(ctx.conn, websocket.CloseInternalServerErr, "Internal Server Error")
}

// reject closes the raw connection without completing the handshake.
func (m *mux) reject(w http.ResponseWriter, r *http.Request, reason error) {
	m.logger.DebugContext(r.Context(), "websocket upgrade rejected",
		logger.Path(r.URL.Path),
		logger.RemoteAddr(r.RemoteAddr),
		logger.Error(reason),
	)

	hj, ok := w.(http.Hijacker)
	if !ok {
		m.logger.DebugContext(r.Context(), "aborting rejected upgrade", logger.Error(ErrHijackUnsupported))
		// net/http closes the connection without a response
		panic(http.ErrAbortHandler)
	}

	conn, _, err := hj.Hijack()
	if err != nil {
		panic(http.ErrAbortHandler)
	}
	_ = conn.Close()
}

func requestURL(r *http.Request) (*url.URL, error) {
	if r.RequestURI == "" {
		if r.URL == nil {
			return nil, ErrMalformedRequest
		}
		return r.URL, nil
	}
	return url.ParseRequestURI(r.RequestURI)
}

func closeConn(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = conn.Close()
}

func isPeerClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	)
}

// handle registers a route entry. Duplicate patterns replace the handler in place.
func (m *mux) handle(pattern string, h HandlerFunc, mountPath string) {
	if pattern == "" {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilHandler, pattern))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{pattern: pattern, handler: h, mountPath: mountPath}
	if i, ok := m.index[pattern]; ok {
		m.routes[i] = e
		return
	}

	m.index[pattern] = len(m.routes)
	m.routes = append(m.routes, e)
}
