package engine

import (
	"context"
	"fmt"
	"time"

	"vindinium/bot"
	"vindinium/communication"
	"vindinium/game"

	"github.com/rs/zerolog/log"
)

// Remote drives one bot through a server connection.
type Remote struct {
	comm communication.Communicator
	bot  bot.Bot
}

func NewRemote(comm communication.Communicator, b bot.Bot) *Remote {
	return &Remote{comm: comm, bot: b}
}

// Run plays until the server reports the game finished and returns the view
// URL. The bot's End is called on every path once the game has started.
func (e *Remote) Run(ctx context.Context) (string, error) {
	state, err := e.comm.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect: %w", err)
	}
	viewURL := state.ViewURL
	log.Info().Str("game", state.Game.ID).Str("view", viewURL).Msg("game started")

	defer e.bot.End()
	if err := e.bot.Start(state); err != nil {
		return viewURL, fmt.Errorf("failed to start bot: %w", err)
	}

	for moves := 0; !state.Game.Finished; moves++ {
		if moves >= MaxMoves {
			return viewURL, fmt.Errorf("game %s did not finish after %d moves", state.Game.ID, moves)
		}
		if state.Hero.Crashed {
			log.Warn().Str("game", state.Game.ID).Int("turn", state.Game.Turn).Msg("hero crashed, leaving")
			return viewURL, nil
		}
		if err := ctx.Err(); err != nil {
			return viewURL, err
		}

		start := time.Now()
		cmd, err := e.bot.Move(state)
		if err != nil {
			log.Error().Err(err).Int("turn", state.Game.Turn).Msg("bot failed, staying")
			cmd = game.Stay
		}
		thinking := time.Since(start)

		state, err = e.comm.Move(ctx, state.PlayURL, cmd)
		if err != nil {
			return viewURL, fmt.Errorf("failed to send move: %w", err)
		}
		log.Debug().
			Int("turn", state.Game.Turn).
			Int("max", state.Game.MaxTurns).
			Str("cmd", string(cmd)).
			Dur("thinking", thinking).
			Dur("total", time.Since(start)).
			Msg("turn")
	}
	log.Info().Str("game", state.Game.ID).Int("gold", state.Hero.Gold).Int("mines", state.Hero.MineCount).Msg("game finished")
	return viewURL, nil
}
