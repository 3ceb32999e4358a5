// Package tracing provides OpenTelemetry tracing for the Foodgram client.
//
// Features:
//   - SDK tracer provider installation with ratio sampling (Install)
//   - Client spans around every API request (Transport)
//   - W3C trace context propagation to the Foodgram backend
//
// Example usage:
//
//	shutdown := tracing.Install(1.0)
//	defer shutdown(context.Background())
//
//	httpClient := &http.Client{Transport: tracing.NewTransport(nil)}
package tracing
