package bot

import (
	"vindinium/astar"
	"vindinium/game"
	"vindinium/utils"

	"golang.org/x/exp/rand"
)

var randomCommands = []game.Command{game.Stay, game.North, game.West, game.East, game.South}

// navigator turns target tiles into single commands.
type navigator struct {
	search *astar.AStar
	rng    *rand.Rand
}

func (n *navigator) reset(m *game.Map) {
	n.search = astar.New(m)
}

// goTo returns the first step of a path to target. Targets that cannot be
// entered (mines, taverns) produce the bump into them once adjacent.
func (n *navigator) goTo(from, target game.Position) (game.Command, bool) {
	path, ok := n.search.Find(from, target)
	if !ok {
		return "", false
	}
	next := target
	if len(path) > 0 {
		next = path[0]
	}
	cmd, err := game.PathToCommand(from, next)
	if err != nil {
		return "", false
	}
	return cmd, true
}

// goToNearest tries targets from the closest to the farthest and stops at
// the first reachable one.
func goToNearest[T utils.Locatable](n *navigator, from game.Position, targets []T) (game.Command, bool) {
	for _, t := range utils.OrderByDistance(from.X, from.Y, targets) {
		x, y := t.Coords()
		if cmd, ok := n.goTo(from, game.Position{X: x, Y: y}); ok {
			return cmd, true
		}
	}
	return "", false
}

func (n *navigator) nearestTavern(g *game.Game, hero *game.Hero) game.Command {
	if cmd, ok := goToNearest(n, hero.Position, g.Taverns); ok {
		return cmd
	}
	return n.random()
}

func (n *navigator) random() game.Command {
	return randomCommands[n.rng.Intn(len(randomCommands))]
}
