// Package experiments runs bot line-ups against each other on local games
// and stores the results as CSV.
package experiments

import (
	"context"
	"fmt"

	"vindinium/bot"
	"vindinium/config"
	"vindinium/engine"
	"vindinium/experiments/metrics"
	"vindinium/gamemaster"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	NumGames = 10 // per line-up
	MaxTurns = 300 * gamemaster.Heroes
	Root     = "results"
)

// DefaultLineups pits every strategy against the simple bots.
func DefaultLineups(mapName string, maxTurns int) []metrics.LineupConfig {
	return []metrics.LineupConfig{
		{ID: 1, Bots: []string{"mole", "miner", "aggressive", "random"}, Map: mapName, MaxTurns: maxTurns},
		{ID: 2, Bots: []string{"minimax", "miner", "aggressive", "random"}, Map: mapName, MaxTurns: maxTurns},
		{ID: 3, Bots: []string{"mole", "minimax", "miner", "aggressive"}, Map: mapName, MaxTurns: maxTurns},
		{ID: 4, Bots: []string{"mole", "mole", "miner", "miner"}, Map: mapName, MaxTurns: maxTurns},
	}
}

// DepthLineups plays minimax at each depth against three miners.
func DepthLineups(depths []int, mapName string, maxTurns int) []metrics.LineupConfig {
	lineups := make([]metrics.LineupConfig, 0, len(depths))
	for i, depth := range depths {
		lineups = append(lineups, metrics.LineupConfig{
			ID:       i + 1,
			Bots:     []string{"minimax", "miner", "miner", "miner"},
			Map:      mapName,
			MaxTurns: maxTurns,
			Depth:    depth,
		})
	}
	return lineups
}

type Tournament struct {
	Name    string
	Lineups []metrics.LineupConfig
	Games   int
	Tuning  config.Tuning
	Seed    uint64
	Root    string
}

// Run plays Games games per line-up and writes lineup_configs.csv,
// game_records.csv and move_records.csv. It returns the output directory.
func (t Tournament) Run(ctx context.Context) (string, error) {
	var (
		games []metrics.GameRecord
		moves []metrics.MoveRecord
		wins  = map[string]int{}
		seed  = t.Seed
	)
	log.Info().Str("tournament", t.Name).Int("lineups", len(t.Lineups)).Int("games", t.Games).Msg("starting tournament")

	for li, lineup := range t.Lineups {
		tuning := t.Tuning
		if lineup.Depth > 0 {
			tuning.Minimax.Depth = lineup.Depth
		}
		for i := 0; i < t.Games; i++ {
			id := uuid.NewString()
			winner, gm, mm, err := runGame(ctx, id, lineup, tuning, seed)
			if err != nil {
				return "", fmt.Errorf("line-up %d game %d: %w", lineup.ID, i+1, err)
			}
			seed += uint64(len(lineup.Bots))

			games = append(games, metrics.GameRecord{ID: id, Lineup: lineup.ID, GameMetric: gm})
			for _, m := range mm {
				moves = append(moves, metrics.MoveRecord{Game: id, MoveMetric: m})
			}
			if winner > 0 {
				wins[lineup.Bots[winner-1]]++
			}
			log.Info().Msgf("completed line-up %d of %d game %d of %d, winner hero %d", li+1, len(t.Lineups), i+1, t.Games, winner)
		}
	}
	log.Info().Interface("wins", wins).Msgf("completed %s tournament", t.Name)

	root := t.Root
	if root == "" {
		root = Root
	}
	writer, err := metrics.NewWriter(root)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteLineupConfigs(t.Lineups); err != nil {
		return "", fmt.Errorf("failed to store line-ups: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored tournament results")
	return writer.Dir(), nil
}

func runGame(ctx context.Context, id string, lineup metrics.LineupConfig, tuning config.Tuning, seed uint64) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	local, err := gamemaster.NewLocal(id, lineup.Map, lineup.Bots, lineup.MaxTurns)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}
	bots := make([]bot.Bot, len(lineup.Bots))
	for i, name := range lineup.Bots {
		if bots[i], err = bot.New(name, tuning, seed+uint64(i)); err != nil {
			return 0, metrics.GameMetric{}, nil, err
		}
	}
	e, err := engine.NewLocal(local, bots, lineup.Bots)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}
	return e.Run(ctx)
}
