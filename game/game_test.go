package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testState(rows []string, heroes ...HeroInfo) *State {
	return &State{
		Game: GameInfo{
			ID:       "test",
			MaxTurns: 40,
			Heroes:   heroes,
			Board:    Board{Size: len(rows), Tiles: CompactTiles(rows...)},
		},
		Hero: heroes[0],
	}
}

func testHero(id, x, y int) HeroInfo {
	p := ToPos(Position{x, y})
	return HeroInfo{ID: id, Name: "bot", Pos: p, SpawnPos: p, Life: MaxLife}
}

func TestParseBoard(t *testing.T) {
	t.Run("decodes walls, taverns, mines and hero markers", func(t *testing.T) {
		l, err := ParseBoard(Board{Size: 3, Tiles: "##[]$-" + "@1$2  " + "      "})

		require.NoError(t, err)
		require.Equal(t, Wall, l.Map.At(0, 0))
		require.Equal(t, TavernTile, l.Map.At(1, 0))
		require.Equal(t, MineTile, l.Map.At(2, 0))
		require.Equal(t, Empty, l.Map.At(0, 1), "Hero markers are empty terrain")
		require.Equal(t, Position{0, 1}, l.Heroes[1])
		require.Len(t, l.Mines, 2)
		require.Equal(t, NoOwner, l.Mines[0].Owner)
		require.Equal(t, 2, l.Mines[1].Owner)
		require.Equal(t, []*Tavern{{Position{1, 0}}}, l.Taverns)
	})

	t.Run("owners outside the hero range are unowned", func(t *testing.T) {
		l, err := ParseBoard(Board{Size: 2, Tiles: "$7$4" + "$0$x"})

		require.NoError(t, err)
		for _, m := range l.Mines[2:] {
			require.Equal(t, NoOwner, m.Owner)
		}
		require.Equal(t, NoOwner, l.Mines[0].Owner)
		require.Equal(t, 4, l.Mines[1].Owner)
	})

	t.Run("rejects a tile string of the wrong length", func(t *testing.T) {
		_, err := ParseBoard(Board{Size: 2, Tiles: "####"})

		require.Error(t, err)
	})
}

func TestMapTileAt(t *testing.T) {
	l, err := ParseBoard(Board{Size: 2, Tiles: CompactTiles("#.", ".$")})
	require.NoError(t, err)

	t.Run("in bounds", func(t *testing.T) {
		tile, err := l.Map.TileAt(1, 1)

		require.NoError(t, err)
		require.Equal(t, MineTile, tile)
	})

	t.Run("out of bounds", func(t *testing.T) {
		for _, p := range []Position{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
			_, err := l.Map.TileAt(p.X, p.Y)
			require.ErrorIs(t, err, ErrOutOfBounds, "%v should be out of bounds", p)
		}
		require.Panics(t, func() { l.Map.At(2, 2) })
	})
}

func TestNewGame(t *testing.T) {
	rows := []string{
		".....",
		".T...",
		"..$..",
		".....",
		".....",
	}
	s := testState(rows, testHero(1, 0, 0), testHero(2, 4, 4))
	s.Game.Heroes[1].Pos = ToPos(Position{3, 4})

	g, err := NewGame(s)

	require.NoError(t, err)
	require.Equal(t, Spawn, g.Map.At(0, 0))
	require.Equal(t, Spawn, g.Map.At(4, 4))
	require.Equal(t, Position{3, 4}, g.Heroes[1].Position, "Wire axes should be swapped")
	require.Equal(t, Position{4, 4}, g.Heroes[1].Spawn)
	require.Len(t, g.Mines, 1)
	require.Len(t, g.Taverns, 1)

	t.Run("update keeps pointers and reads mine owners", func(t *testing.T) {
		hero := g.Heroes[0]
		mine := g.Mines[0]
		next := *s
		next.Game.Turn = 3
		next.Game.Heroes = []HeroInfo{testHero(1, 1, 2), testHero(2, 4, 4)}
		next.Game.Heroes[0].MineCount = 1
		tiles := []byte(next.Game.Board.Tiles)
		tiles[(2*5+2)*2+1] = '1'
		next.Game.Board.Tiles = string(tiles)

		g.Update(&next)

		require.Same(t, hero, g.Heroes[0])
		require.Same(t, mine, g.Mines[0])
		require.Equal(t, 3, g.Turn)
		require.Equal(t, Position{1, 2}, hero.Position)
		require.Equal(t, 1, mine.Owner)
		require.Equal(t, 1, hero.MineCount)
	})
}

func TestNewGameMineOwners(t *testing.T) {
	s := testState([]string{"1.", ".."}, testHero(1, 0, 0), testHero(2, 1, 1))
	s.Game.Board.Tiles = "@1$3" + "$2@2"

	g, err := NewGame(s)
	require.NoError(t, err)

	require.Equal(t, NoOwner, g.Mines[0].Owner, "Only two heroes play")
	require.Equal(t, 2, g.Mines[1].Owner)

	snap := NewSnapshot(g)
	require.NotPanics(t, func() { snap.Apply(0, East) })
}

func TestGameString(t *testing.T) {
	g, err := NewGame(testState([]string{"#$", "T."}, testHero(1, 1, 1)))
	require.NoError(t, err)

	got := g.String()

	require.Equal(t, strings.Join([]string{" --", "|.M|", "|T1|", " --"}, "\n"), got)
}

func TestCommands(t *testing.T) {
	t.Run("parse accepts the five commands", func(t *testing.T) {
		for _, s := range []string{"North", "South", "East", "West", "Stay"} {
			c, err := ParseCommand(s)
			require.NoError(t, err)
			require.Equal(t, Command(s), c)
		}
	})

	t.Run("parse rejects unknown commands", func(t *testing.T) {
		_, err := ParseCommand("north")
		require.ErrorIs(t, err, ErrInvalidCommand)
	})

	t.Run("directions round trip", func(t *testing.T) {
		for _, c := range []Command{North, South, East, West, Stay} {
			dx, dy := c.Dir()
			got, err := DirToCommand(dx, dy)
			require.NoError(t, err)
			require.Equal(t, c, got)
		}
	})

	t.Run("path to command rejects non adjacent steps", func(t *testing.T) {
		c, err := PathToCommand(Position{1, 1}, Position{1, 0})
		require.NoError(t, err)
		require.Equal(t, North, c)

		_, err = PathToCommand(Position{0, 0}, Position{1, 1})
		require.ErrorIs(t, err, ErrInvalidCommand)
	})
}
