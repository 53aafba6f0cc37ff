package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/klauspost/compress/gzip"
)

// CompressConfig configures response compression.
type CompressConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// MinSize is the smallest response compressed (default: 1KB)
	MinSize int
	// Level is the gzip level (default: gzip.DefaultCompression)
	Level int
}

// Compress gzips responses for clients that accept it.
func Compress() func(http.Handler) http.Handler {
	return CompressWithConfig(CompressConfig{})
}

// CompressWithConfig panics on an invalid level or size, like other registration errors.
func CompressWithConfig(cfg CompressConfig) func(http.Handler) http.Handler {
	if cfg.MinSize <= 0 {
		cfg.MinSize = 1024
	}
	if cfg.Level == 0 {
		cfg.Level = gzip.DefaultCompression
	}

	wrap, err := gzhttp.NewWrapper(
		gzhttp.MinSize(cfg.MinSize),
		gzhttp.CompressionLevel(cfg.Level),
	)
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		compressed := wrap(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}
			compressed.ServeHTTP(w, r)
		})
	}
}
