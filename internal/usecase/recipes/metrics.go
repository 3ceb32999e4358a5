package recipes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the recipe list controller
var (
	// fetchesIssuedTotal tracks page requests started by the controller
	fetchesIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_list_fetches_issued_total",
			Help: "Total number of recipe page requests issued by the list controller",
		},
	)

	// fetchFailuresTotal tracks failed page requests that were still current
	fetchFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_list_fetch_failures_total",
			Help: "Total number of recipe page requests that failed",
		},
	)

	// staleResultsTotal tracks responses dropped because a newer request or page superseded them
	staleResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_list_stale_results_total",
			Help: "Total number of recipe page responses discarded as stale",
		},
	)
)
