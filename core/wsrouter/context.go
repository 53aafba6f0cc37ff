package wsrouter

import (
	"context"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Context carries everything known about one accepted WebSocket connection.
// It implements context.Context and is cancelled once the pipeline returns
// or the pipeline timeout fires.
type Context struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	r       *http.Request
	conn    *websocket.Conn
	path    string
	pattern string
	params  Params
	query   map[string]string
}

func newContext(r *http.Request, conn *websocket.Conn, path, pattern string, params Params, query map[string]string) *Context {
	ctx, cancel := context.WithCancelCause(r.Context())
	return &Context{
		ctx:     ctx,
		cancel:  cancel,
		r:       r,
		conn:    conn,
		path:    path,
		pattern: pattern,
		params:  params,
		query:   query,
	}
}

// Deadline delegates to the underlying context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.ctx.Deadline()
}

// Done is closed when the pipeline finishes or is aborted.
func (c *Context) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Err delegates to the underlying context.
func (c *Context) Err() error {
	return c.ctx.Err()
}

// Cause returns the reason the context was cancelled, if any.
func (c *Context) Cause() error {
	return context.Cause(c.ctx)
}

// Value returns a request-scoped value stored with SetValue or inherited from the request.
func (c *Context) Value(key any) any {
	return c.ctx.Value(key)
}

// SetValue stores a request-scoped value visible to later middleware and the handler.
func (c *Context) SetValue(key, val any) {
	c.ctx = context.WithValue(c.ctx, key, val)
}

// Conn returns the accepted WebSocket connection.
func (c *Context) Conn() *websocket.Conn {
	return c.conn
}

// Request returns the HTTP request that carried the upgrade.
func (c *Context) Request() *http.Request {
	return c.r
}

// Path returns the request pathname used for matching.
func (c *Context) Path() string {
	return c.path
}

// Pattern returns the route pattern that matched.
func (c *Context) Pattern() string {
	return c.pattern
}

// Param returns the value of a route parameter, or "" if absent.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// Params returns a copy of all route parameters.
func (c *Context) Params() Params {
	return maps.Clone(c.params)
}

// Query returns the value of a query parameter, or "" if absent.
func (c *Context) Query(key string) string {
	if c.query == nil {
		return ""
	}
	return c.query[key]
}

// QueryParams returns a copy of all query parameters.
func (c *Context) QueryParams() map[string]string {
	return maps.Clone(c.query)
}

// flattenQuery keeps the last value of every repeated key.
func flattenQuery(values url.Values) map[string]string {
	query := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			query[key] = vals[len(vals)-1]
		}
	}
	return query
}
