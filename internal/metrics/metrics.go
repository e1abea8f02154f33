// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PantrySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pantry_size",
			Help: "Number of ingredients currently in the pantry.",
		})

	PantryMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_mutations_total",
			Help: "Pantry mutations by operation and outcome.",
		},
		[]string{"op", "outcome"})

	MatchRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Cumulative number of recipe-ranking computations requested.",
		})

	MatchCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "match_cache_hits_total",
			Help: "Ranking requests served from the result cache.",
		})

	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Persistence-collaborator failures by driver.",
		},
		[]string{"driver"})
)

func init() {
	prometheus.MustRegister(
		PantrySize,
		PantryMutations,
		MatchRequests,
		MatchCacheHits,
		StoreErrors,
	)
}
