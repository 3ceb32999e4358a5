package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PageRequestsTotal counts recipe page requests.
	// Labels: outcome (applied, stale, failed), page_range (1-10, 11-50, ...)
	PageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_page_requests_total",
			Help: "Total number of recipe page requests by outcome",
		},
		[]string{"outcome", "page_range"},
	)

	// DurationSeconds tracks page fetch duration distribution.
	DurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_page_duration_seconds",
			Help:    "Recipe page fetch duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
		},
	)

	// TotalCount tracks the last server-reported number of recipes.
	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_total_count",
			Help: "Last reported total number of recipes",
		},
	)
)

// RecordRequest records the outcome of a page request.
func RecordRequest(outcome string, page int) {
	PageRequestsTotal.WithLabelValues(outcome, getPageRangeBucket(page)).Inc()
}

// RecordDuration records page fetch duration in seconds.
func RecordDuration(seconds float64) {
	DurationSeconds.Observe(seconds)
}

// UpdateTotalCount updates the recipe count gauge.
func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
