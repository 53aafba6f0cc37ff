package wsrouter

import "net/http"

// HandlerFunc handles an accepted WebSocket connection. The connection is closed
// when the function returns; a non-nil error closes it with status 1011.
type HandlerFunc func(ctx *Context) error

// Middleware wraps a handler. It continues the pipeline by calling next and halts
// it by returning without doing so.
type Middleware func(next HandlerFunc) HandlerFunc

// Registrar is the capability to register WebSocket routes and middleware.
type Registrar interface {
	// Handle registers h for pattern. Registering the same pattern again replaces
	// the handler and keeps the original position in the table.
	Handle(pattern string, h HandlerFunc)
	// Use appends middleware run for every accepted connection before the route handler.
	Use(middlewares ...Middleware)
	// Mount copies every route of sub under prefix.
	Mount(prefix string, sub Router)
}

// Router dispatches upgrade requests to registered WebSocket handlers.
type Router interface {
	http.Handler
	Registrar
	Routes

	// Intercept returns a handler that dispatches upgrade requests and passes
	// everything else to next.
	Intercept(next http.Handler) http.Handler
	// Attach wraps srv.Handler with Intercept.
	Attach(srv *http.Server)
}

// Routes provides route introspection.
type Routes interface {
	Routes() []Route
}

// Route describes a registered WebSocket route in table order.
type Route struct {
	Pattern   string
	MountPath string
}

// New creates a router with an empty route table.
func New(opts ...Option) Router {
	return newMux(opts...)
}
