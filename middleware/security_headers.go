package middleware

import (
	"maps"
	"net/http"
	"slices"
	"strings"
)

// SecurityHeadersConfig configures the security headers middleware.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	ContentTypeOptions        string
	FrameOptions              string
	XSSProtection             string
	StrictTransportSecurity   string
	ContentSecurityPolicy     string
	ReferrerPolicy            string
	PermissionsPolicy         string
	FeaturePolicy             string
	CacheControl              string
	CrossOriginOpenerPolicy   string
	CrossOriginEmbedderPolicy string
	CrossOriginResourcePolicy string

	// CustomHeaders allows adding additional headers
	CustomHeaders map[string]string

	// IsDevelopment disables HSTS
	IsDevelopment bool
}

// Predefined security configurations
var (
	// RecommendedSecurity is the header set sent by default by the web server.
	RecommendedSecurity = SecurityHeadersConfig{
		ReferrerPolicy: "no-referrer",
		CacheControl:   "max-age=30, public",
		FeaturePolicy: strings.Join([]string{
			"accelerometer 'none'",
			"autoplay 'none'",
			"camera 'none'",
			"fullscreen 'none'",
			"geolocation 'none'",
			"gyroscope 'none'",
			"magnetometer 'none'",
			"microphone 'none'",
			"payment 'none'",
			"sync-xhr 'none'",
		}, "; "),
		PermissionsPolicy: "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(self), payment=()",
		CustomHeaders: map[string]string{
			"Access-Control-Allow-Headers": "Origin, X-Requested-With, Content-Type, Accept, User-Agent",
			"Access-Control-Allow-Methods": "GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH",
		},
	}

	// StrictSecurity provides maximum security with strict policies.
	StrictSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "DENY",
		XSSProtection:             "1; mode=block",
		StrictTransportSecurity:   "max-age=63072000; includeSubDomains; preload",
		ContentSecurityPolicy:     "default-src 'none'; script-src 'self'; style-src 'self'; img-src 'self'; font-src 'self'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		ReferrerPolicy:            "no-referrer",
		PermissionsPolicy:         "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginResourcePolicy: "same-origin",
	}

	// BalancedSecurity provides good security with compatibility.
	BalancedSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "SAMEORIGIN",
		XSSProtection:             "1; mode=block",
		StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
		ContentSecurityPolicy:     "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "geolocation=(), microphone=(), camera=()",
		CrossOriginOpenerPolicy:   "same-origin-allow-popups",
		CrossOriginResourcePolicy: "cross-origin",
	}
)

// DefaultCSP is the policy applied by ContentSecurityPolicy when no directives are given.
var DefaultCSP = CSPDirectives{"default-src": {"'self'"}}

// CSPDirectives maps a directive name to its source list.
type CSPDirectives map[string][]string

// String renders the directives in a stable order.
func (d CSPDirectives) String() string {
	keys := slices.Sorted(maps.Keys(d))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(d[k]) == 0 {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, k+" "+strings.Join(d[k], " "))
	}
	return strings.Join(parts, "; ")
}

// SecurityHeaders applies the recommended header set.
func SecurityHeaders() func(http.Handler) http.Handler {
	return SecurityHeadersWithConfig(RecommendedSecurity)
}

// ContentSecurityPolicy sets the Content-Security-Policy header. Empty directives
// fall back to DefaultCSP.
func ContentSecurityPolicy(directives CSPDirectives) func(http.Handler) http.Handler {
	if len(directives) == 0 {
		directives = DefaultCSP
	}
	return SecurityHeadersWithConfig(SecurityHeadersConfig{
		ContentSecurityPolicy: directives.String(),
	})
}

// SecurityHeadersWithConfig creates a security headers middleware with custom configuration.
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			headers[key] = value
		}
	}
	set("X-Content-Type-Options", cfg.ContentTypeOptions)
	set("X-Frame-Options", cfg.FrameOptions)
	set("X-XSS-Protection", cfg.XSSProtection)
	set("Strict-Transport-Security", cfg.StrictTransportSecurity)
	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Permissions-Policy", cfg.PermissionsPolicy)
	set("Feature-Policy", cfg.FeaturePolicy)
	set("Cache-Control", cfg.CacheControl)
	set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy)
	set("Cross-Origin-Embedder-Policy", cfg.CrossOriginEmbedderPolicy)
	set("Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy)
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			for key, value := range headers {
				h.Set(key, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
