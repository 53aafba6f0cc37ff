package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/webserver/core/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Readiness runs every check in order. It writes "READY" when all pass and
// 503 Service Unavailable on the first failure.
//
// Example:
//
//	r.Get("/health/ready", health.Readiness(log, app.Healthcheck))
func Readiness(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component("health"),
					logger.Error(err),
				)
				writeText(w, http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
				return
			}
		}

		writeText(w, http.StatusOK, "READY")
	}
}
