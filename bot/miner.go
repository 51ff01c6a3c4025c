package bot

import (
	"vindinium/config"
	"vindinium/game"

	"golang.org/x/exp/rand"
)

// Miner walks to the closest mine it does not own and heals when low.
type Miner struct {
	cfg config.MinerConfig
	nav navigator
}

func NewMiner(cfg config.MinerConfig, rng *rand.Rand) *Miner {
	return &Miner{cfg: cfg, nav: navigator{rng: rng}}
}

func (b *Miner) Start(g *game.Game, _ *game.Hero) {
	b.nav.reset(g.Map)
}

func (b *Miner) Move(g *game.Game, hero *game.Hero) game.Command {
	if hero.Life < b.cfg.HealBelow && hero.Gold > game.TavernCost {
		return b.nav.nearestTavern(g, hero)
	}
	return b.nearestMine(g, hero)
}

func (b *Miner) End() {}

func (b *Miner) nearestMine(g *game.Game, hero *game.Hero) game.Command {
	var targets []*game.Mine
	for _, m := range g.Mines {
		if m.Owner != hero.ID {
			targets = append(targets, m)
		}
	}
	if cmd, ok := goToNearest(&b.nav, hero.Position, targets); ok {
		return cmd
	}
	return b.nav.random()
}
