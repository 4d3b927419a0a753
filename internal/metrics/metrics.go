// Package metrics exposes Prometheus collectors for the event finder.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventfinder_search_requests_total",
		Help: "Total number of search requests served",
	})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eventfinder_recommendations_total",
		Help: "Total number of recommendation requests served",
	}, []string{"kind"})
	FeedbackSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventfinder_feedback_submitted_total",
		Help: "Total number of feedback submissions accepted",
	})
	IndexBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "eventfinder_index_build_seconds",
		Help:    "Time spent building the similarity index",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		SearchRequestsTotal,
		RecommendationsTotal,
		FeedbackSubmittedTotal,
		IndexBuildSeconds,
	)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }
