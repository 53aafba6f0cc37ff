package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/webserver/core/logger"
)

// LogEntry describes a completed request. It is passed to LoggingConfig.Sink.
type LogEntry struct {
	Timestamp     time.Time
	ID            string
	IP            string
	RemoteIP      string
	Method        string
	URL           string
	Headers       map[string]any
	Body          []byte
	Elapsed       time.Duration
	StatusCode    int
	ContentLength int64
	BytesOut      int64
}

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// Logger receives the log records (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: Info)
	LogLevel slog.Level

	// Full adds request headers and, for POST/PUT/PATCH, the request body
	Full bool

	// MaxBodyLogSize limits the logged body (default: 4KB)
	MaxBodyLogSize int

	// SensitiveHeaders are logged as [REDACTED]
	SensitiveHeaders []string

	// SlowRequestThreshold raises the level to Warn for slow requests (default: 5s)
	SlowRequestThreshold time.Duration

	// Sink replaces the log record with a callback. Entries handed to a sink
	// always carry headers and body.
	Sink func(entry LogEntry)

	Component string
}

// Logging logs one line per completed request.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingFull logs every request including headers and write-method bodies.
func LoggingFull(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log, Full: true})
}

// LoggingWithSink hands every completed request to fn instead of a logger.
func LoggingWithSink(fn func(entry LogEntry)) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Sink: fn})
}

// LoggingWithConfig creates a logging middleware with custom configuration.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxBodyLogSize <= 0 {
		cfg.MaxBodyLogSize = 4 * 1024
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	detailed := cfg.Full || cfg.Sink != nil

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			requestID, _ := GetRequestID(r.Context())
			ip, _ := GetClientIP(r.Context())

			entry := LogEntry{
				Timestamp:     start,
				ID:            requestID,
				IP:            ip,
				RemoteIP:      r.RemoteAddr,
				Method:        r.Method,
				URL:           r.URL.RequestURI(),
				ContentLength: max(r.ContentLength, 0),
			}

			if detailed {
				entry.Headers = redactHeaders(r.Header, cfg.SensitiveHeaders)
				if hasLoggableBody(r) {
					body, _ := io.ReadAll(r.Body)
					r.Body = io.NopCloser(bytes.NewReader(body))
					if len(body) > cfg.MaxBodyLogSize {
						body = body[:cfg.MaxBodyLogSize]
					}
					entry.Body = body
				}
			}

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			entry.Elapsed = time.Since(start)
			entry.StatusCode = rw.statusCode
			entry.BytesOut = int64(rw.size)

			if cfg.Sink != nil {
				cfg.Sink(entry)
				return
			}

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.RequestID(entry.ID),
				logger.ClientIP(entry.IP),
				logger.Method(entry.Method),
				logger.Path(r.URL.Path),
				logger.Query(r.URL.RawQuery),
				logger.StatusCode(entry.StatusCode),
				logger.BytesOut(entry.BytesOut),
				logger.Duration(entry.Elapsed),
			}
			if cfg.Full {
				attrs = append(attrs, slog.Any("request_headers", entry.Headers))
				if len(entry.Body) > 0 {
					attrs = append(attrs, slog.String("request_body", string(entry.Body)))
				}
			}

			level := cfg.LogLevel
			switch {
			case rw.statusCode >= 500:
				level = slog.LevelError
			case rw.statusCode >= 400:
				level = slog.LevelWarn
			case entry.Elapsed > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}

func hasLoggableBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func redactHeaders(h http.Header, sensitive []string) map[string]any {
	headers := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.Contains(sensitive, key):
			headers[key] = "[REDACTED]"
		case len(values) == 1:
			headers[key] = values[0]
		default:
			headers[key] = values
		}
	}
	return headers
}

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
