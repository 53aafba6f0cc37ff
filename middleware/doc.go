// Package middleware provides net/http middleware for the web server.
//
// Every middleware has the func(http.Handler) http.Handler shape, so it plugs
// into chi or any other router. Most come in two forms: a constructor with
// defaults and an XxxWithConfig variant taking a config struct with an
// optional Skip predicate.
//
//	r := chi.NewRouter()
//	r.Use(
//		middleware.RequestID(),
//		middleware.ClientIP(),
//		middleware.AuthorizationDecoder(),
//		middleware.BodyLimit(),
//		middleware.CORS("*"),
//		middleware.SecurityHeaders(),
//		middleware.Compress(),
//	)
//
// Values stored by RequestID, ClientIP and AuthorizationDecoder are read back
// with GetRequestID, GetClientIP and GetAuthorization.
//
// Protected guards routes with an AuthenticationProvider. HtpasswdProvider
// builds one from an Apache htpasswd file:
//
//	auth, err := middleware.HtpasswdProvider("/etc/webserver/.htpasswd")
//	if err != nil {
//		return err
//	}
//	r.With(middleware.Protected(auth)).Get("/admin", adminHandler)
package middleware
