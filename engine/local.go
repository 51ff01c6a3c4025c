package engine

import (
	"context"
	"fmt"
	"time"

	"vindinium/bot"
	"vindinium/experiments/metrics"
	"vindinium/game"
	"vindinium/gamemaster"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*Local)(nil)

// Local plays one bot per hero on a gamemaster.Local.
type Local struct {
	game  *gamemaster.Local
	bots  []bot.Bot
	names []string
}

// NewLocal pairs bots[i] with hero i+1. names label the move metrics.
func NewLocal(g *gamemaster.Local, bots []bot.Bot, names []string) (*Local, error) {
	if len(bots) != gamemaster.Heroes {
		return nil, fmt.Errorf("need %d bots, got %d", gamemaster.Heroes, len(bots))
	}
	if len(names) != len(bots) {
		return nil, fmt.Errorf("need a name for each of the %d bots, got %d", len(bots), len(names))
	}
	return &Local{game: g, bots: bots, names: names}, nil
}

func (e *Local) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gm := metrics.GameMetric{StartTime: time.Now()}
	var moves []metrics.MoveMetric

	for i, b := range e.bots {
		if err := b.Start(e.game.State(game.HeroID(i))); err != nil {
			return 0, gm, moves, fmt.Errorf("failed to start %s: %w", e.names[i], err)
		}
		defer b.End()
	}

	for step := 1; !e.game.Finished(); step++ {
		if step > MaxMoves {
			return 0, gm, moves, fmt.Errorf("game %s did not finish after %d moves", e.game.ID(), MaxMoves)
		}
		if err := ctx.Err(); err != nil {
			return 0, gm, moves, err
		}

		heroID := e.game.ToMove()
		b := e.bots[heroID-1]
		start := time.Now()
		cmd, err := b.Move(e.game.State(heroID))
		if err != nil {
			log.Error().Err(err).Int("hero", heroID).Msg("bot failed, staying")
			cmd = game.Stay
		}

		move := metrics.MoveMetric{Step: step, Player: heroID, Bot: e.names[heroID-1]}
		if s, ok := b.(bot.Searcher); ok {
			if sm, searched := s.LastSearch(); searched {
				move.SearchMetric = sm
			}
		}
		if move.Duration == 0 {
			move.Duration = time.Since(start)
		}
		moves = append(moves, move)

		if err := e.game.Play(heroID, cmd); err != nil {
			return 0, gm, moves, fmt.Errorf("move %d of hero %d: %w", step, heroID, err)
		}
	}

	final := e.game.Snapshot()
	for _, h := range final.Heroes {
		gm.Gold = append(gm.Gold, h.Gold)
		gm.Mines = append(gm.Mines, h.MineCount)
	}
	winner, ok := e.game.Winner()
	if !ok {
		winner = 0
	}
	gm.Winner = winner
	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)
	gm.TotalMoves = len(moves)

	log.Info().Str("game", e.game.ID()).Int("winner", winner).Ints("gold", gm.Gold).Dur("duration", gm.Duration).Msg("local game finished")
	return winner, gm, moves, nil
}
