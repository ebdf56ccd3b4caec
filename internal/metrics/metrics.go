// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipenet_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipenet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Size of the last rendered subgraph per category label.
	SubgraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipenet_subgraph_nodes",
			Help: "Visible nodes in the last subgraph selected for a category",
		},
		[]string{"category"},
	)

	SubgraphEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipenet_subgraph_edges",
			Help: "Visible edges in the last subgraph selected for a category",
		},
		[]string{"category"},
	)

	CategoryCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipenet_category_cache_total",
			Help: "Category table lookups by cache result",
		},
		[]string{"result"}, // hit|miss
	)

	DatasetReloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipenet_dataset_reloads_total",
			Help: "Times the category cache was dropped after a dataset change",
		},
	)
)
