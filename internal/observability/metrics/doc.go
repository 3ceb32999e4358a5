// Package metrics provides the Prometheus metrics of the Foodgram client.
//
// This package centralizes:
//   - API call metrics (count, duration, retries, rate limiting, circuit breaker)
//   - List state metrics (recipes shown, current page)
//   - Recipe action metrics (like, cart)
//
// All metrics are registered with the Prometheus default registry and
// exposed by the browser's /metrics endpoint.
package metrics
