// Package metrics provides centralized Prometheus metrics for the Foodgram client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API metrics track calls to the Foodgram backend
var (
	// APIRequestsTotal counts API calls by operation and status.
	// status is the HTTP status code, or "error" when no response was received.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_api_requests_total",
			Help: "Total number of Foodgram API requests",
		},
		[]string{"operation", "status"},
	)

	// APIRequestDuration measures API call duration in seconds, retries included.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_api_request_duration_seconds",
			Help:    "Foodgram API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// APIRetriesTotal counts retry attempts by operation.
	APIRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_api_retries_total",
			Help: "Total number of Foodgram API retry attempts",
		},
		[]string{"operation"},
	)

	// RateLimitWaitSeconds tracks time spent waiting for the client rate limiter.
	RateLimitWaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_api_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the client-side rate limiter",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)

	// CircuitBreakerOpenTotal counts calls rejected by an open circuit breaker.
	CircuitBreakerOpenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_api_circuit_open_total",
			Help: "Total number of API calls rejected by an open circuit breaker",
		},
		[]string{"circuit"},
	)
)

// List state metrics track what the browser currently shows
var (
	// ListRecipesShown is the number of recipes currently in the list.
	ListRecipesShown = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_list_recipes_shown",
			Help: "Number of recipes currently held by the list store",
		},
	)

	// ListCurrentPage is the page number currently selected.
	ListCurrentPage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_list_current_page",
			Help: "Currently selected recipe list page",
		},
	)

	// ActionsTotal counts like / cart toggles by action and result.
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_actions_total",
			Help: "Total number of recipe like and cart actions",
		},
		[]string{"action", "result"},
	)
)

// RecordAPIRequest records one API call. statusCode <= 0 means no response.
func RecordAPIRequest(operation string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	APIRequestsTotal.WithLabelValues(operation, status).Inc()
	APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRetry records a retry attempt for operation.
func RecordRetry(operation string) {
	APIRetriesTotal.WithLabelValues(operation).Inc()
}

// RecordRateLimitWait records time spent waiting for a rate limiter token.
func RecordRateLimitWait(d time.Duration) {
	RateLimitWaitSeconds.Observe(d.Seconds())
}

// RecordCircuitOpen records a call rejected by the named circuit breaker.
func RecordCircuitOpen(circuit string) {
	CircuitBreakerOpenTotal.WithLabelValues(circuit).Inc()
}

// RecordListState records the list size and selected page.
func RecordListState(recipes, page int) {
	ListRecipesShown.Set(float64(recipes))
	ListCurrentPage.Set(float64(page))
}

// RecordAction records a like or cart action. action is "like" or "cart".
func RecordAction(action string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ActionsTotal.WithLabelValues(action, result).Inc()
}
