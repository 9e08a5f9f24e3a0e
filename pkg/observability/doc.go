// Package observability provides structured logging, Prometheus metrics,
// health probes, and OpenTelemetry tracing for the shapefile generator.
//
// The Logger wraps slog with JSON output and field chaining. Metrics
// registers export, cache, storage, and HTTP instruments on a private
// registry served by Handler. HealthChecker exposes liveness and
// readiness probes over any set of named dependencies.
package observability
