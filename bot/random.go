package bot

import (
	"vindinium/game"

	"golang.org/x/exp/rand"
)

// Random ignores the state and picks any command.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (b *Random) Start(*game.State) error { return nil }

func (b *Random) Move(*game.State) (game.Command, error) {
	return randomCommands[b.rng.Intn(len(randomCommands))], nil
}

func (b *Random) End() {}
