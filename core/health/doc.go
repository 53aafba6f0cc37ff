// Package health provides HTTP handlers for service health probes.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependency checks pass
//   - NoContent: 204 for minimal overhead
//
// Usage:
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health/ready", health.Readiness(log, app.Healthcheck))
//	r.Get("/ping", health.NoContent)
//
// Checks follow the func(context.Context) error signature.
package health
