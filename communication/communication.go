// Package communication connects bots to a Vindinium server.
package communication

import (
	"context"

	"vindinium/game"
)

// Communicator abstracts the transport between a bot engine and a server.
type Communicator interface {
	// Connect joins a game and blocks until it starts
	Connect(ctx context.Context) (*game.State, error)
	// Move sends cmd to playURL and returns the state of the hero's next turn
	Move(ctx context.Context, playURL string, cmd game.Command) (*game.State, error)
}
