// Package observability groups the logging, metrics, tracing and request ID
// infrastructure of the Foodgram client.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for API calls and list state
//   - tracing: OpenTelemetry provider setup and client spans
//   - requestid: X-Request-ID generation for outgoing calls
package observability
