// Package gamemaster referees games on built-in maps.
package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"vindinium/game"

	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrUnknownHero = errors.New("unknown hero")
	ErrUnknownMap  = errors.New("unknown map")
)

const Heroes = game.MaxHeroes

// Local is an authoritative game. The rules are those of game.Snapshot.
// It is safe for concurrent use.
type Local struct {
	id    string
	names []string

	mu       sync.RWMutex
	state    *game.Snapshot
	watchers map[chan *game.State]struct{}
}

// NewLocal starts a game on a built-in map. maxTurns counts single hero
// actions.
func NewLocal(id, mapName string, names []string, maxTurns int) (*Local, error) {
	board, ok := Board(mapName)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMap, mapName)
	}
	layout, err := game.ParseBoard(board)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", mapName, err)
	}
	state, err := game.NewSnapshotFromLayout(layout, Heroes, maxTurns)
	if err != nil {
		return nil, fmt.Errorf("failed to start game on %s: %w", mapName, err)
	}
	return &Local{
		id:       id,
		names:    names,
		state:    state,
		watchers: map[chan *game.State]struct{}{},
	}, nil
}

func (l *Local) ID() string {
	return l.id
}

// ToMove is the id of the hero whose command is expected next.
func (l *Local) ToMove() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return game.HeroID(l.state.ToMove())
}

// State renders the game as seen by heroID. Zero renders it for spectators.
func (l *Local) State(heroID int) *game.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.ToState(l.id, heroID, l.names)
}

// Snapshot returns the current snapshot. Snapshots are never modified.
func (l *Local) Snapshot() *game.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Play applies cmd for heroID.
func (l *Local) Play(heroID int, cmd game.Command) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if heroID < 1 || heroID > len(l.state.Heroes) {
		return fmt.Errorf("%w %d", ErrUnknownHero, heroID)
	}
	if l.state.Over() {
		return ErrGameOver
	}
	if toMove := game.HeroID(l.state.ToMove()); toMove != heroID {
		return fmt.Errorf("%w: hero %d plays, not %d", ErrNotYourTurn, toMove, heroID)
	}
	l.state = l.state.Apply(heroID-1, cmd)
	log.Trace().Str("game", l.id).Int("hero", heroID).Str("cmd", string(cmd)).Int("turn", l.state.Turn).Msg("played")

	l.broadcast()
	return nil
}

func (l *Local) Finished() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Over()
}

// Winner is the hero with the most gold. A shared lead has no winner.
func (l *Local) Winner() (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	best, winner, tied := -1, 0, false
	for i, h := range l.state.Heroes {
		switch {
		case h.Gold > best:
			best, winner, tied = h.Gold, game.HeroID(i), false
		case h.Gold == best:
			tied = true
		}
	}
	return winner, !tied
}

// History lists every command played so far.
func (l *Local) History() []game.Command {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Lineage()
}

// Watch streams spectator states after every action. Slow watchers miss
// states. The channel is closed by cancel or when the game ends.
func (l *Local) Watch(buffer int) (<-chan *game.State, func()) {
	ch := make(chan *game.State, buffer)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Over() {
		close(ch)
		return ch, func() {}
	}
	l.watchers[ch] = struct{}{}
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if _, ok := l.watchers[ch]; ok {
				delete(l.watchers, ch)
				close(ch)
			}
		})
	}
}

// broadcast must be called with l.mu held.
func (l *Local) broadcast() {
	if len(l.watchers) == 0 {
		return
	}
	state := l.state.ToState(l.id, 0, l.names)
	over := l.state.Over()
	for ch := range l.watchers {
		select {
		case ch <- state:
		default:
		}
		if over {
			delete(l.watchers, ch)
			close(ch)
		}
	}
}
