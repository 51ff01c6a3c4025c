package gamemaster

import (
	"testing"

	"vindinium/game"

	"github.com/stretchr/testify/require"
)

func TestMaps(t *testing.T) {
	for name, rows := range Maps {
		t.Run(name, func(t *testing.T) {
			for i, row := range rows {
				require.Len(t, row, len(rows), "row %d", i)
			}
			board, ok := Board(name)
			require.True(t, ok)
			l, err := game.ParseBoard(board)
			require.NoError(t, err)
			require.Len(t, l.Heroes, Heroes)
			require.NotEmpty(t, l.Mines)
			require.NotEmpty(t, l.Taverns)
		})
	}
}

func TestNewLocal(t *testing.T) {
	t.Run("starts every hero on its spawn", func(t *testing.T) {
		l, err := NewLocal("g1", "m1", []string{"a", "b", "c", "d"}, 40)
		require.NoError(t, err)

		state := l.State(2)

		require.Equal(t, "g1", state.Game.ID)
		require.Equal(t, 40, state.Game.MaxTurns)
		require.Equal(t, 2, state.Hero.ID)
		require.Equal(t, "b", state.Hero.Name)
		require.Equal(t, state.Hero.SpawnPos, state.Hero.Pos)
		require.Equal(t, game.MaxLife, state.Hero.Life)
		require.Equal(t, 1, l.ToMove())
		require.False(t, l.Finished())
	})

	t.Run("rejects unknown maps", func(t *testing.T) {
		_, err := NewLocal("g1", "m9", nil, 40)

		require.ErrorIs(t, err, ErrUnknownMap)
	})
}

func TestLocalPlay(t *testing.T) {
	t.Run("advances the turn in hero order", func(t *testing.T) {
		l, err := NewLocal("g1", "m1", nil, 40)
		require.NoError(t, err)

		require.NoError(t, l.Play(1, game.South))
		require.Equal(t, 2, l.ToMove())
		require.Equal(t, game.Pos{X: 1, Y: 0}, l.State(1).Hero.Pos)
		require.Equal(t, []game.Command{game.South}, l.History())
	})

	t.Run("rejects out of turn and unknown heroes", func(t *testing.T) {
		l, err := NewLocal("g1", "m1", nil, 40)
		require.NoError(t, err)

		require.ErrorIs(t, l.Play(2, game.South), ErrNotYourTurn)
		require.ErrorIs(t, l.Play(5, game.South), ErrUnknownHero)
		require.ErrorIs(t, l.Play(0, game.South), ErrUnknownHero)
	})

	t.Run("stops at max turns", func(t *testing.T) {
		l, err := NewLocal("g1", "m1", nil, 8)
		require.NoError(t, err)

		for i := 0; i < 8; i++ {
			require.NoError(t, l.Play(l.ToMove(), game.Stay))
		}

		require.True(t, l.Finished())
		require.True(t, l.State(1).Game.Finished)
		require.ErrorIs(t, l.Play(l.ToMove(), game.Stay), ErrGameOver)
	})
}

func TestLocalWinner(t *testing.T) {
	l, err := NewLocal("g1", "m1", nil, 40)
	require.NoError(t, err)

	_, ok := l.Winner()
	require.False(t, ok, "Everyone starts without gold")

	l.state.Heroes[2].Gold = 5
	winner, ok := l.Winner()
	require.True(t, ok)
	require.Equal(t, 3, winner)

	l.state.Heroes[0].Gold = 5
	_, ok = l.Winner()
	require.False(t, ok)
}

func TestLocalWatch(t *testing.T) {
	t.Run("streams every action until the end", func(t *testing.T) {
		l, err := NewLocal("g1", "m1", nil, 4)
		require.NoError(t, err)
		updates, cancel := l.Watch(8)
		defer cancel()

		for i := 0; i < 4; i++ {
			require.NoError(t, l.Play(l.ToMove(), game.Stay))
		}

		var turns []int
		for state := range updates {
			turns = append(turns, state.Game.Turn)
		}
		require.Equal(t, []int{1, 2, 3, 4}, turns)
	})

	t.Run("cancel closes the stream", func(t *testing.T) {
		l, err := NewLocal("g1", "m1", nil, 4)
		require.NoError(t, err)
		updates, cancel := l.Watch(1)

		cancel()
		cancel()
		require.NoError(t, l.Play(1, game.Stay))

		_, open := <-updates
		require.False(t, open)
	})
}
