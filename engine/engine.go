// Package engine runs games between bots, either against a remote server or
// on a local referee.
package engine

import (
	"context"

	"vindinium/experiments/metrics"
)

// MaxMoves guards against games that never finish.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game to the end
	Run(ctx context.Context) (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
