package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// AllowOrigins specifies allowed origins. Empty means "*".
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials is ignored for wildcard origins.
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int

	// AllowOriginFunc takes precedence over AllowOrigins when set.
	AllowOriginFunc func(r *http.Request, origin string) bool
}

// CORS allows cross-origin requests from the comma separated origin list.
// An empty string or "*" allows every origin.
func CORS(origin string) func(http.Handler) http.Handler {
	var origins []string
	for o := range strings.SplitSeq(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return CORSWithConfig(CORSConfig{AllowOrigins: origins})
}

// CORSWithConfig creates a CORS middleware with custom configuration.
func CORSWithConfig(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}

	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		}
	}

	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Authorization",
			"Content-Language",
			"Content-Type",
			"Origin",
			"User-Agent",
			"X-Request-ID",
			"X-Requested-With",
		}
	}

	credentials := cfg.AllowCredentials
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			credentials = false
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:     cfg.AllowOrigins,
		AllowOriginFunc:    cfg.AllowOriginFunc,
		AllowedMethods:     cfg.AllowMethods,
		AllowedHeaders:     cfg.AllowHeaders,
		ExposedHeaders:     cfg.ExposeHeaders,
		AllowCredentials:   credentials,
		MaxAge:             cfg.MaxAge,
		OptionsPassthrough: true,
	})
}
