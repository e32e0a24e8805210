package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeNetwork = "network"
	OutcomeServer  = "server"
	OutcomeParse   = "parse"
)

// Search client Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apolice",
			Name:      "search_requests_total",
			Help:      "Total number of policy searches by outcome",
		},
		[]string{"outcome"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "apolice",
			Name:      "search_request_duration_seconds",
			Help:      "Policy search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	StaleResponsesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "apolice",
			Name:      "stale_responses_total",
			Help:      "Search responses discarded because a newer search already resolved",
		},
	)

	SearchResults = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "apolice",
			Name:      "search_results",
			Help:      "Number of records in the current result set",
		},
	)
)

var registerOnce sync.Once

// Register registers every collector with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchRequestDuration)
		prometheus.MustRegister(StaleResponsesTotal)
		prometheus.MustRegister(SearchResults)
		prometheus.MustRegister(httpRequestDuration)
		prometheus.MustRegister(httpRequestsTotal)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
