package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vindinium_search_duration_seconds",
		Help:    "Time spent in one negamax search",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 15},
	})

	searchNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vindinium_search_nodes_total",
		Help: "Snapshots visited by negamax",
	})

	searchLeaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vindinium_search_leaves_total",
		Help: "Snapshots scored by the evaluation function",
	})

	searchCutoffs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vindinium_search_cutoffs_total",
		Help: "Alpha-beta cutoffs",
	})
)

func observeSearch(m SearchMetric) {
	searchDuration.Observe(m.Duration.Seconds())
	searchNodes.Add(float64(m.Nodes))
	searchLeaves.Add(float64(m.Leaves))
	searchCutoffs.Add(float64(m.Cutoffs))
}
