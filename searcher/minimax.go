package searcher

import (
	"time"

	"vindinium/experiments/metrics"
	"vindinium/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(m *Minimax)

// Minimax is a depth bounded negamax search with alpha-beta pruning. The
// searching hero plays against the coalition of all other heroes.
type Minimax struct {
	depth          int
	terminal       Terminal
	evaluate       game.Evaluate
	generate       Generate
	sort           Sort
	tieBreak       TieBreak
	tieProbability float64
	rng            *rand.Rand
	metrics        metrics.Collector

	hero  int // id of the searching hero
	sides int // plies per round
}

type Result struct {
	Value    int
	Commands []game.Command // root to leaf, the searching hero's move first
	Leaf     *game.Snapshot
}

// WithDepth sets the number of plies (single hero actions) to look ahead.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

func WithTerminal(terminal Terminal) Option {
	return func(m *Minimax) {
		if terminal != nil {
			m.terminal = terminal
		}
	}
}

func WithEvaluate(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithGenerate(generate Generate) Option {
	return func(m *Minimax) {
		if generate != nil {
			m.generate = generate
		}
	}
}

func WithSort(sort Sort) Option {
	return func(m *Minimax) {
		if sort != nil {
			m.sort = sort
		}
	}
}

func WithTieBreak(tieBreak TieBreak, probability float64) Option {
	return func(m *Minimax) {
		m.tieBreak = tieBreak
		if probability >= 0 && probability <= 1 {
			m.tieProbability = probability
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *Minimax) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:          DefaultDepth,
		terminal:       GameOver,
		evaluate:       game.EvaluateMines,
		generate:       GenerateMoves,
		sort:           SortReverse,
		tieBreak:       TieBreakValue,
		tieProbability: DefaultTieProbability,
		rng:            rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:        metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Find searches from the live game for the hero whose turn it is.
func (m *Minimax) Find(g *game.Game) ([]game.Command, metrics.SearchMetric) {
	result, metric := m.Search(game.NewSnapshot(g))
	return result.Commands, metric
}

// Search runs negamax from root for the hero to move at root. It never
// fails: a depth of zero or a finished game yields the root evaluation and
// no commands.
func (m *Minimax) Search(root *game.Snapshot) (Result, metrics.SearchMetric) {
	m.hero = game.HeroID(root.ToMove())
	m.sides = len(root.Heroes)
	m.metrics.Start(m.depth)

	value, leaf := m.negamax(root, m.depth, -infinity, infinity, 0)

	metric := m.metrics.Complete()
	result := Result{Value: value, Leaf: leaf, Commands: leaf.LineageFrom(root)}
	log.Debug().
		Int("hero", m.hero).
		Int("value", value).
		Interface("commands", result.Commands).
		Int("nodes", metric.Nodes).
		Int("cutoffs", metric.Cutoffs).
		Dur("duration", metric.Duration).
		Msg("search complete")
	return result, metric
}

// own reports whether the ply at color belongs to the searching hero.
func (m *Minimax) own(color int) bool {
	return color%m.sides == 0
}

func (m *Minimax) negamax(s *game.Snapshot, depth, alpha, beta, color int) (int, *game.Snapshot) {
	m.metrics.AddNode()

	if depth == 0 || m.terminal(s) {
		m.metrics.AddLeaf()
		value := m.evaluate(s, m.hero)
		if !m.own(color) {
			value = -value
		}
		return value, s
	}

	children := m.sort(m.generate(s))
	if len(children) == 0 {
		children = []*game.Snapshot{s.Play(game.Stay)}
	}

	// Values are negated, and the window mirrored, only where the turn passes
	// between the searching hero and its opponents.
	flip := m.own(color) != m.own(color+1)
	best := -infinity
	var bestLeaf *game.Snapshot
	for _, child := range children {
		var value int
		var leaf *game.Snapshot
		if flip {
			value, leaf = m.negamax(child, depth-1, -beta, -alpha, color+1)
			value = -value
		} else {
			value, leaf = m.negamax(child, depth-1, alpha, beta, color+1)
		}

		if value > best || (value == best && m.replaceOnTie()) {
			best = value
			bestLeaf = leaf
		}
		alpha = max(alpha, value)
		if alpha >= beta {
			m.metrics.AddCutoff()
			break
		}
	}
	return best, bestLeaf
}

func (m *Minimax) replaceOnTie() bool {
	return m.tieBreak == TieBreakValue && m.rng.Float64() < m.tieProbability
}
