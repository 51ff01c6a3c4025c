package game

import (
	"math"
)

// Evaluate scores a snapshot from the point of view of the hero with the given id.
type Evaluate func(s *Snapshot, heroID int) int

const MineValue = 1000

// EvaluateMines rewards owned mines, punishes enemy mines and the distance to
// the closest mine still to take, and adds a tenth of the hero's life.
func EvaluateMines(s *Snapshot, heroID int) int {
	hero := s.Heroes[heroID-1]
	value := 0
	nearest := -1
	for p, owner := range s.Mines {
		switch {
		case owner == heroID:
			value += MineValue
			continue
		case owner != NoOwner:
			value -= MineValue
		}
		if d := hero.Distance(p); nearest < 0 || d < nearest {
			nearest = d
		}
	}
	if nearest > 0 {
		value -= nearest
	}
	return value + int(math.RoundToEven(float64(hero.Life)/10))
}
