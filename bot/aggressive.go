package bot

import (
	"vindinium/config"
	"vindinium/game"

	"golang.org/x/exp/rand"
)

// Aggressive hunts the hero holding the most mines and heals between fights.
type Aggressive struct {
	cfg config.AggressiveConfig
	nav navigator
}

func NewAggressive(cfg config.AggressiveConfig, rng *rand.Rand) *Aggressive {
	return &Aggressive{cfg: cfg, nav: navigator{rng: rng}}
}

func (b *Aggressive) Start(g *game.Game, _ *game.Hero) {
	b.nav.reset(g.Map)
}

func (b *Aggressive) Move(g *game.Game, hero *game.Hero) game.Command {
	target := bestTarget(g, hero)
	if target == nil {
		return b.nav.random()
	}
	distance := hero.Distance(target.Position)
	inSpawn := target.Position == target.Spawn
	canPay := hero.Gold > game.TavernCost

	switch {
	case hero.Life <= b.cfg.CriticalLife && canPay:
		return b.nav.nearestTavern(g, hero)
	case distance < b.cfg.ChaseDistance && !inSpawn:
		return b.chase(hero, target)
	case hero.Life <= b.cfg.LowLife && canPay:
		return b.nav.nearestTavern(g, hero)
	}
	return b.chase(hero, target)
}

func (b *Aggressive) End() {}

func (b *Aggressive) chase(hero, target *game.Hero) game.Command {
	if cmd, ok := b.nav.goTo(hero.Position, target.Position); ok {
		return cmd
	}
	return b.nav.random()
}

// bestTarget is the first other hero with the most mines.
func bestTarget(g *game.Game, hero *game.Hero) *game.Hero {
	var target *game.Hero
	for _, h := range g.Heroes {
		if h.ID == hero.ID {
			continue
		}
		if target == nil || h.MineCount > target.MineCount {
			target = h
		}
	}
	return target
}
