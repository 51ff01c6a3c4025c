package bot

import (
	"vindinium/config"
	"vindinium/experiments/metrics"
	"vindinium/game"
	"vindinium/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Minimax plays the first move of a negamax search.
type Minimax struct {
	search *searcher.Minimax
	last   metrics.SearchMetric
}

func NewMinimax(cfg config.MinimaxConfig, rng *rand.Rand) *Minimax {
	tieBreak := searcher.TieBreakValue
	if cfg.TieBreak == "none" {
		tieBreak = searcher.TieBreakNone
	}
	return &Minimax{search: searcher.NewMinimax(
		searcher.WithDepth(cfg.Depth),
		searcher.WithTieBreak(tieBreak, cfg.TieProbability),
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	)}
}

func (b *Minimax) Start(*game.Game, *game.Hero) {}

func (b *Minimax) Move(g *game.Game, hero *game.Hero) game.Command {
	commands, metric := b.search.Find(g)
	b.last = metric
	if len(commands) == 0 {
		log.Warn().Int("hero", hero.ID).Int("turn", g.Turn).Msg("search found no move, staying")
		return game.Stay
	}
	log.Debug().Int("hero", hero.ID).Int("nodes", metric.Nodes).Str("move", string(commands[0])).Msg("minimax move")
	return commands[0]
}

func (b *Minimax) End() {}

func (b *Minimax) LastSearch() (metrics.SearchMetric, bool) {
	return b.last, true
}
