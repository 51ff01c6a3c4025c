// Package bot holds the hero strategies that answer the server each turn.
package bot

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"vindinium/config"
	"vindinium/experiments/metrics"
	"vindinium/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrUnknownBot = errors.New("unknown bot")

// Bot is driven by a game engine with raw server states.
type Bot interface {
	// Start is called once with the first state of the game
	Start(state *game.State) error
	// Move returns the command for the state's hero
	Move(state *game.State) (game.Command, error)
	// End is called after the game finished or failed
	End()
}

// Searcher is implemented by bots that search before moving.
type Searcher interface {
	// LastSearch reports the metrics of the latest move, false when the bot
	// does not search
	LastSearch() (metrics.SearchMetric, bool)
}

// Strategy decides on hydrated game data. Wrap it with Hydrate to get a Bot.
type Strategy interface {
	Start(g *game.Game, hero *game.Hero)
	Move(g *game.Game, hero *game.Hero) game.Command
	End()
}

type hydrated struct {
	strategy Strategy
	game     *game.Game
	hero     *game.Hero
}

// Hydrate turns a Strategy into a Bot that keeps a typed Game up to date
// from the server states.
func Hydrate(s Strategy) Bot {
	return &hydrated{strategy: s}
}

func (b *hydrated) Start(state *game.State) error {
	g, err := game.NewGame(state)
	if err != nil {
		return fmt.Errorf("failed to hydrate game: %w", err)
	}
	hero := g.Hero(state.Hero.ID)
	if hero == nil {
		return fmt.Errorf("hero %d is not in game %s", state.Hero.ID, g.ID)
	}
	b.game, b.hero = g, hero
	b.strategy.Start(g, hero)
	return nil
}

func (b *hydrated) Move(state *game.State) (game.Command, error) {
	if b.game == nil {
		if err := b.Start(state); err != nil {
			return game.Stay, err
		}
	} else {
		b.game.Update(state)
	}
	return b.strategy.Move(b.game, b.hero), nil
}

func (b *hydrated) End() {
	b.strategy.End()
}

func (b *hydrated) LastSearch() (metrics.SearchMetric, bool) {
	if s, ok := b.strategy.(Searcher); ok {
		return s.LastSearch()
	}
	return metrics.SearchMetric{}, false
}

type factory func(tuning config.Tuning, rng *rand.Rand) Bot

var registry = map[string]factory{
	"random": func(_ config.Tuning, rng *rand.Rand) Bot {
		return NewRandom(rng)
	},
	"miner": func(t config.Tuning, rng *rand.Rand) Bot {
		return Hydrate(NewMiner(t.Miner, rng))
	},
	"aggressive": func(t config.Tuning, rng *rand.Rand) Bot {
		return Hydrate(NewAggressive(t.Aggressive, rng))
	},
	"minimax": func(t config.Tuning, rng *rand.Rand) Bot {
		return Hydrate(NewMinimax(t.Minimax, rng))
	},
	"mole": func(t config.Tuning, rng *rand.Rand) Bot {
		return Hydrate(NewMole(t.Mole, rng))
	},
}

// Names lists the registered bots.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named bot. Names are case insensitive and accept a "bot"
// suffix, so "MinerBot" is the miner.
func New(name string, tuning config.Tuning, seed uint64) (Bot, error) {
	key := strings.TrimSuffix(strings.ToLower(name), "bot")
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w %q, choose one of %s", ErrUnknownBot, name, strings.Join(Names(), ", "))
	}
	log.Debug().Str("bot", key).Uint64("seed", seed).Msg("creating bot")
	return f(tuning, rand.New(rand.NewSource(seed))), nil
}
