package searcher

import (
	"slices"

	"vindinium/game"
)

const (
	DefaultDepth          = 5
	DefaultTieProbability = 0.3
	infinity              = 1 << 30
)

// Terminal reports whether the game has ended at s.
type Terminal func(s *game.Snapshot) bool

// Generate expands s into one child per candidate command of the hero to move.
type Generate func(s *game.Snapshot) []*game.Snapshot

// Sort orders children before they are searched.
type Sort func(children []*game.Snapshot) []*game.Snapshot

type TieBreak int

const (
	// TieBreakValue replaces the best child by an equally valued sibling with
	// a fixed probability.
	TieBreakValue TieBreak = iota
	// TieBreakNone keeps the first best child.
	TieBreakNone
)

// GameOver ends the search when the game runs out of turns.
func GameOver(s *game.Snapshot) bool {
	return s.Over()
}

// GenerateMoves creates a child for every movement command that stays on the
// map, in the order of game.Commands. Stay is left out so the hero keeps
// making progress. A crashed hero only stays.
func GenerateMoves(s *game.Snapshot) []*game.Snapshot {
	i := s.ToMove()
	h := s.Heroes[i]
	if h.Crashed {
		return []*game.Snapshot{s.Apply(i, game.Stay)}
	}
	children := make([]*game.Snapshot, 0, len(game.Commands))
	for _, c := range game.Commands {
		dx, dy := c.Dir()
		p := h.Add(dx, dy)
		if !s.Map().InBounds(p.X, p.Y) {
			continue
		}
		children = append(children, s.Apply(i, c))
	}
	return children
}

func SortReverse(children []*game.Snapshot) []*game.Snapshot {
	slices.Reverse(children)
	return children
}

func SortNone(children []*game.Snapshot) []*game.Snapshot {
	return children
}
