package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vindinium_server_games_started_total",
		Help: "Training games created by the local server",
	})
	movesPlayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vindinium_server_moves_total",
		Help: "Commands applied by the local server",
	}, []string{"source"})
	rejectedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vindinium_server_rate_limited_total",
		Help: "Requests rejected by the per address rate limit",
	})
	activeWatchers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vindinium_server_watchers",
		Help: "Open websocket spectators",
	})
)
