package wsrouter

// chain builds a single handler from a middleware stack and endpoint.
func chain(middlewares []Middleware, endpoint HandlerFunc) HandlerFunc {
	h := endpoint

	// Wrap in reverse order so the first middleware runs first
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
