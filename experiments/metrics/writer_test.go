package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	t.Run("lineup configs", func(t *testing.T) {
		err := w.WriteLineupConfigs([]LineupConfig{{ID: 1, Bots: []string{"miner", "random"}, Map: "m1", MaxTurns: 40, Depth: 3}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "lineup_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "bots", "map", "max_turns", "depth"},
			{"1", "miner;random", "m1", "40", "3"},
		}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID:     "g1",
			Lineup: 1,
			GameMetric: GameMetric{
				Winner:     2,
				Gold:       []int{3, 9},
				Mines:      []int{0, 2},
				StartTime:  start,
				EndTime:    start.Add(time.Second),
				Duration:   time.Second,
				TotalMoves: 40,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"g1", "1", "2", "3;9", "0;2", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "40"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{
			Game: "g1",
			MoveMetric: MoveMetric{
				Step:         1,
				Player:       1,
				Bot:          "minimax",
				SearchMetric: SearchMetric{Depth: 4, Duration: time.Millisecond, Nodes: 10, Leaves: 7, Cutoffs: 2},
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"g1", "1", "1", "minimax", "1ms", "4", "10", "7", "2"}, rows[1])
	})
}

func TestCollector(t *testing.T) {
	t.Run("counts events between start and complete", func(t *testing.T) {
		c := NewCollector()
		c.Start(3)
		c.AddNode()
		c.AddNode()
		c.AddLeaf()
		c.AddCutoff()

		m := c.Complete()

		require.Equal(t, 3, m.Depth)
		require.Equal(t, 2, m.Nodes)
		require.Equal(t, 1, m.Leaves)
		require.Equal(t, 1, m.Cutoffs)
	})

	t.Run("restarting resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddNode()
		c.Start(1)

		require.Equal(t, 0, c.Complete().Nodes)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3)
		c.AddNode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
