package astar

import (
	"testing"

	"vindinium/game"

	"github.com/stretchr/testify/require"
)

func newMap(t *testing.T, rows ...string) *game.Map {
	t.Helper()
	l, err := game.ParseBoard(game.Board{Size: len(rows), Tiles: game.CompactTiles(rows...)})
	require.NoError(t, err)
	_, err = game.NewSnapshotFromLayout(l, len(l.Heroes), 0)
	require.NoError(t, err)
	return l.Map
}

func requireConnected(t *testing.T, from game.Position, path []game.Position) {
	t.Helper()
	prev := from
	for _, p := range path {
		require.Equal(t, 1, prev.Distance(p), "Path steps must be adjacent: %v -> %v", prev, p)
		prev = p
	}
}

func TestFind(t *testing.T) {
	open := []string{
		".....",
		".....",
		".....",
		".....",
		".....",
	}

	t.Run("open map path costs the Manhattan distance", func(t *testing.T) {
		a := New(newMap(t, open...))
		from, to := game.Position{X: 0, Y: 0}, game.Position{X: 4, Y: 4}

		path, ok := a.Find(from, to)

		require.True(t, ok)
		require.Len(t, path, 8)
		require.Equal(t, 8, a.Cost(path))
		require.Equal(t, to, path[len(path)-1])
		requireConnected(t, from, path)
	})

	t.Run("goal on a mine ends next to it", func(t *testing.T) {
		a := New(newMap(t,
			".....",
			".....",
			".....",
			".....",
			"....$",
		))
		from, to := game.Position{X: 0, Y: 0}, game.Position{X: 4, Y: 4}

		path, ok := a.Find(from, to)

		require.True(t, ok)
		require.Len(t, path, 7)
		require.Equal(t, 1, path[len(path)-1].Distance(to))
		require.NotContains(t, path, to)
		requireConnected(t, from, path)
	})

	t.Run("goal on a wall or tavern ends next to it", func(t *testing.T) {
		a := New(newMap(t,
			".....",
			"..#..",
			".....",
			"...T.",
			".....",
		))

		for _, to := range []game.Position{{X: 2, Y: 1}, {X: 3, Y: 3}} {
			path, ok := a.Find(game.Position{X: 0, Y: 4}, to)
			require.True(t, ok)
			require.Equal(t, 1, path[len(path)-1].Distance(to))
		}
	})

	t.Run("already next to a blocked goal", func(t *testing.T) {
		a := New(newMap(t, "$.", ".."))

		path, ok := a.Find(game.Position{X: 1, Y: 0}, game.Position{X: 0, Y: 0})

		require.True(t, ok)
		require.Empty(t, path)
	})

	t.Run("start equals goal", func(t *testing.T) {
		a := New(newMap(t, open...))

		path, ok := a.Find(game.Position{X: 2, Y: 2}, game.Position{X: 2, Y: 2})

		require.True(t, ok)
		require.Empty(t, path)
	})

	t.Run("walled in goal has no path", func(t *testing.T) {
		a := New(newMap(t,
			".....",
			"..#..",
			".#.#.",
			"..#..",
			".....",
		))

		path, ok := a.Find(game.Position{X: 0, Y: 0}, game.Position{X: 2, Y: 2})

		require.False(t, ok)
		require.Nil(t, path)
	})

	t.Run("walled in mine has no path", func(t *testing.T) {
		a := New(newMap(t,
			".....",
			"..#..",
			".#$#.",
			"..#..",
			".....",
		))

		_, ok := a.Find(game.Position{X: 0, Y: 0}, game.Position{X: 2, Y: 2})

		require.False(t, ok)
	})

	t.Run("spawn tiles are avoided when a cheaper detour exists", func(t *testing.T) {
		a := New(newMap(t,
			"...",
			".1.",
			"...",
		))

		path, ok := a.Find(game.Position{X: 1, Y: 0}, game.Position{X: 1, Y: 2})

		require.True(t, ok)
		require.Equal(t, 4, a.Cost(path))
		require.NotContains(t, path, game.Position{X: 1, Y: 1})
	})

	t.Run("spawn tiles are crossed when they are the only way", func(t *testing.T) {
		a := New(newMap(t,
			"#.#",
			"#1#",
			"#.#",
		))

		path, ok := a.Find(game.Position{X: 1, Y: 0}, game.Position{X: 1, Y: 2})

		require.True(t, ok)
		require.Equal(t, []game.Position{{X: 1, Y: 1}, {X: 1, Y: 2}}, path)
		require.Equal(t, 5, a.Cost(path))
	})

	t.Run("equal cost routes resolve first discovered first", func(t *testing.T) {
		a := New(newMap(t, "...", "...", "..."))

		path, ok := a.Find(game.Position{X: 0, Y: 0}, game.Position{X: 2, Y: 2})

		require.True(t, ok)
		require.Equal(t, []game.Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}, path)
	})

	t.Run("out of bounds positions panic", func(t *testing.T) {
		a := New(newMap(t, open...))

		require.Panics(t, func() { a.Find(game.Position{X: 0, Y: 0}, game.Position{X: 5, Y: 0}) })
		require.Panics(t, func() { a.Find(game.Position{X: -1, Y: 0}, game.Position{X: 0, Y: 0}) })
	})
}
