// Package wsrouter routes WebSocket upgrade requests by path to handlers,
// running a shared middleware pipeline after the handshake and before the handler.
//
// # Routing
//
// Patterns are slash-delimited. A segment starting with ":" captures the path
// segment in that position; every other segment must match exactly. The pattern
// "*" matches any path. Leading, trailing and repeated slashes are ignored and
// matching is case-sensitive.
//
// Routes are tried in registration order and the first match wins. Registering
// an existing pattern again replaces its handler and keeps its position.
//
//	r := wsrouter.New(wsrouter.WithLogger(log))
//	r.Handle("/chat/:room", func(ctx *wsrouter.Context) error {
//		room := ctx.Param("room")
//		// read and write on ctx.Conn()
//		return nil
//	})
//
// A request whose path matches nothing is dropped: the raw connection is
// closed and no handshake response is written.
//
// # Middleware
//
// Middleware registered with Use runs in order for every accepted connection.
// Returning without calling next halts the pipeline. A returned error or a panic
// closes the connection with status 1011 (internal error); a clean return closes
// it with 1000.
//
//	r.Use(func(next wsrouter.HandlerFunc) wsrouter.HandlerFunc {
//		return func(ctx *wsrouter.Context) error {
//			if ctx.Query("token") == "" {
//				return errors.New("missing token")
//			}
//			return next(ctx)
//		}
//	})
//
// There is no default bound on how long middleware may take. WithPipelineTimeout
// sets one.
//
// # Mounting
//
// Mount copies the routes of another router under a prefix. The sub-router's
// middleware is folded into each copied handler and runs after the parent's.
// Routes added to the sub-router later are not propagated.
//
//	api := wsrouter.New()
//	api.Handle("/items/:id", itemsHandler)
//	r.Mount("/api", api) // "/api/items/:id"
//
// # Serving
//
// A Router is an http.Handler that answers non-upgrade requests with 426.
// To share a server with plain HTTP routes, use Intercept or Attach:
//
//	srv := &http.Server{Addr: ":8080", Handler: httpRouter}
//	r.Attach(srv)
package wsrouter
