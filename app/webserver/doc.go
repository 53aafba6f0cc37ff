// Package webserver assembles an HTTP server with a WebSocket router.
//
// Plain HTTP requests go through a chi router and the standard middleware
// stack: request ID, client IP, authorization decoding, body limit, CORS,
// recommended headers, optional CSP, compression and optional request
// logging. WebSocket upgrade requests are intercepted before that stack and
// dispatched by a wsrouter.Router.
//
//	app, err := webserver.New(webserver.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	app.HTTP().Get("/health", healthHandler)
//	app.Handle("/echo", echoHandler)
//	if err := app.Start(ctx); err != nil {
//		return err
//	}
//	defer app.Stop()
package webserver
