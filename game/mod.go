package game

import (
	"vindinium/utils"
)

const (
	MaxLife     = 100
	AttackPower = 20
	MineCost    = 20
	TavernCost  = 2
	MaxHeroes   = 4
	// NoOwner marks an unowned mine. Hero ids start at 1.
	NoOwner = 0
)

type Position struct {
	X, Y int
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) Distance(o Position) int {
	return utils.Manhattan(p.X, p.Y, o.X, o.Y)
}

func (p Position) Coords() (int, int) {
	return p.X, p.Y
}

type Mine struct {
	Position
	Owner int
}

type Tavern struct {
	Position
}

type Hero struct {
	ID     int
	Name   string
	UserID string
	Elo    int
	Position
	Spawn     Position
	Life      int
	Gold      int
	MineCount int
	Crashed   bool
	LastDir   string
}
