// Package astar finds cheapest 4-connected paths on a game map.
package astar

import (
	"container/heap"
	"slices"

	"vindinium/game"
)

const (
	EmptyCost = 1
	SpawnCost = 4
	blocked   = -1
)

// West, East, North, South.
var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

type AStar struct {
	m *game.Map
}

func New(m *game.Map) *AStar {
	return &AStar{m: m}
}

// StepCost is the price of stepping onto tile, or -1 when the tile cannot be entered.
func StepCost(tile game.Tile) int {
	switch tile {
	case game.Empty:
		return EmptyCost
	case game.Spawn:
		return SpawnCost
	}
	return blocked
}

// Find returns the cells of a cheapest path from `from` (excluded) to `to`
// (included). When `to` cannot be entered, the path ends on a cell next to
// it instead. ok is false if no such path exists. Both positions must be on
// the map.
func (a *AStar) Find(from, to game.Position) (path []game.Position, ok bool) {
	a.m.At(from.X, from.Y)
	adjacent := StepCost(a.m.At(to.X, to.Y)) == blocked

	reached := func(p game.Position) bool {
		if adjacent {
			return p.Distance(to) == 1
		}
		return p == to
	}
	estimate := func(p game.Position) int {
		if adjacent {
			return max(p.Distance(to)-1, 0)
		}
		return p.Distance(to)
	}

	seq := 0
	open := &queue{{pos: from, priority: estimate(from)}}
	best := map[game.Position]int{from: 0}
	closed := map[game.Position]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if closed[current.pos] {
			continue
		}
		closed[current.pos] = true

		if reached(current.pos) {
			return current.path(), true
		}

		for _, d := range neighbours {
			next := current.pos.Add(d[0], d[1])
			if !a.m.InBounds(next.X, next.Y) || closed[next] {
				continue
			}
			step := StepCost(a.m.At(next.X, next.Y))
			if step == blocked {
				continue
			}
			cost := current.cost + step
			if known, seen := best[next]; seen && known <= cost {
				continue
			}
			best[next] = cost
			seq++
			heap.Push(open, &node{
				pos:      next,
				cost:     cost,
				priority: cost + estimate(next),
				seq:      seq,
				parent:   current,
			})
		}
	}
	return nil, false
}

// Cost sums the step costs of a path returned by Find.
func (a *AStar) Cost(path []game.Position) int {
	total := 0
	for _, p := range path {
		total += StepCost(a.m.At(p.X, p.Y))
	}
	return total
}

func (n *node) path() []game.Position {
	path := []game.Position{}
	for ; n.parent != nil; n = n.parent {
		path = append(path, n.pos)
	}
	slices.Reverse(path)
	return path
}
