package bot

import (
	"testing"

	"vindinium/config"
	"vindinium/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func startMole(t *testing.T, cfg config.MoleConfig, g *game.Game, heroID int) *Mole {
	t.Helper()
	m := NewMole(cfg, rand.New(rand.NewSource(1)))
	m.Start(g, g.Hero(heroID))
	return m
}

var mined = []string{
	"1.$.2",
	".....",
	"..T..",
	".....",
	"3...4",
}

func TestMoleHealing(t *testing.T) {
	t.Run("heals at an adjacent tavern", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		s.Heroes[0].Position = game.Position{X: 2, Y: 1}
		s.Heroes[0].Life = 60
		s.Heroes[0].Gold = 2
		g := hydrate(t, s)
		m := startMole(t, config.DefaultMole(), g, 1)

		require.Equal(t, game.South, m.Move(g, g.Hero(1)))
	})

	t.Run("skips the tavern without gold", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		s.Heroes[0].Position = game.Position{X: 2, Y: 1}
		s.Heroes[0].Life = 60
		g := hydrate(t, s)
		m := startMole(t, config.DefaultMole(), g, 1)

		require.Nil(t, m.healNearby())
	})
}

func TestMoleFlee(t *testing.T) {
	cfg := config.DefaultMole()
	cfg.FleeDangerThreshold = critical

	t.Run("runs along the main axis", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		s.Heroes[0].Position = game.Position{X: 1, Y: 1}
		s.Heroes[0].Life = 30
		s.Heroes[1].Position = game.Position{X: 0, Y: 1}
		s.Heroes[1].Life = 80
		g := hydrate(t, s)
		m := startMole(t, cfg, g, 1)

		level, enemy := m.dangerLevel()
		require.Equal(t, critical, level)
		require.Equal(t, 2, enemy.ID)
		require.Equal(t, game.East, m.Move(g, g.Hero(1)))
	})

	t.Run("turns sideways when blocked", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		s.Heroes[0].Position = game.Position{X: 1, Y: 2}
		s.Heroes[0].Life = 30
		s.Heroes[1].Position = game.Position{X: 0, Y: 2}
		s.Heroes[1].Life = 80
		g := hydrate(t, s)
		m := startMole(t, cfg, g, 1)

		require.Equal(t, game.North, m.Move(g, g.Hero(1)), "The tavern blocks the way east")
	})

	t.Run("orders directions by the enemy offset", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		s.Heroes[0].Position = game.Position{X: 1, Y: 3}
		g := hydrate(t, s)
		m := startMole(t, cfg, g, 1)

		cases := []struct {
			enemy game.Position
			want  game.Command
		}{
			{game.Position{X: 0, Y: 3}, game.East},
			{game.Position{X: 2, Y: 3}, game.West},
			{game.Position{X: 1, Y: 4}, game.North},
			{game.Position{X: 1, Y: 2}, game.South},
		}
		for _, c := range cases {
			require.Equal(t, c.want, m.flee(&game.Hero{ID: 2, Position: c.enemy}), "enemy at %v", c.enemy)
		}
	})

	t.Run("detects a pub fight", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		s.Heroes[0].Position = game.Position{X: 1, Y: 1}
		s.Heroes[1].Position = game.Position{X: 2, Y: 1}
		g := hydrate(t, s)
		m := startMole(t, cfg, g, 1)

		require.True(t, m.pubFight(g.Hero(2)))
		require.False(t, m.pubFight(g.Hero(3)))
	})
}

func TestMoleKills(t *testing.T) {
	t.Run("picks the weak enemy with the most mines", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		s.Heroes[0].Life = 90
		s.Heroes[1].Position = game.Position{X: 0, Y: 2}
		s.Heroes[1].Life = 30
		s.Heroes[1].MineCount = 2
		s.Heroes[2].Position = game.Position{X: 3, Y: 0}
		s.Heroes[2].Life = 20
		s.Heroes[2].MineCount = 3
		g := hydrate(t, s)
		m := startMole(t, config.DefaultMole(), g, 1)

		require.Equal(t, 3, m.killTarget().ID)
		require.Equal(t, game.East, m.Move(g, g.Hero(1)))
	})

	t.Run("raises the life limit for mine rich enemies", func(t *testing.T) {
		s := newSnapshot(t, 400, field...)
		g := hydrate(t, s)
		m := startMole(t, config.DefaultMole(), g, 1)

		require.False(t, m.worthKilling(&game.Hero{Life: 70, MineCount: 2}, 2))
		require.True(t, m.worthKilling(&game.Hero{Life: 70, MineCount: 4}, 2))
		require.False(t, m.worthKilling(&game.Hero{Life: 70, MineCount: 4}, 6), "Too far")
	})
}

func TestMoleMines(t *testing.T) {
	mine := &game.Mine{Position: game.Position{X: 2, Y: 0}}

	t.Run("takes a mine with time left", func(t *testing.T) {
		g := hydrate(t, newSnapshot(t, 400, mined...))
		m := startMole(t, config.DefaultMole(), g, 1)

		require.True(t, m.worthTaking(mine))
		require.Equal(t, game.East, m.Move(g, g.Hero(1)))
	})

	t.Run("ignores a mine late in the game", func(t *testing.T) {
		s := newSnapshot(t, 20, mined...)
		s.Turn = 12
		g := hydrate(t, s)
		m := startMole(t, config.DefaultMole(), g, 1)

		require.Equal(t, 2, m.remainingTurns())
		require.False(t, m.worthTaking(mine))
	})

	t.Run("ignores a mine it would die on", func(t *testing.T) {
		s := newSnapshot(t, 400, mined...)
		s.Heroes[0].Life = 20
		g := hydrate(t, s)
		m := startMole(t, config.DefaultMole(), g, 1)

		require.False(t, m.worthTaking(mine))
	})
}

func TestMoleFriends(t *testing.T) {
	names := []string{"mole", "mole", "miner", "random"}
	s := newSnapshot(t, 400, field...)
	s.Heroes[0].Position = game.Position{X: 1, Y: 0}
	s.Heroes[1].Position = game.Position{X: 2, Y: 0}
	g := hydrate(t, s, names...)

	t.Run("the lower id yields", func(t *testing.T) {
		first := startMole(t, config.DefaultMole(), g, 1)
		second := startMole(t, config.DefaultMole(), g, 2)

		require.True(t, first.hitsFriend(game.East))
		require.False(t, second.hitsFriend(game.West))
		require.Len(t, first.enemies(), 2)
	})

	t.Run("a dying hero does not yield", func(t *testing.T) {
		first := startMole(t, config.DefaultMole(), g, 1)
		g.Hero(1).Life = 20
		defer func() { g.Hero(1).Life = game.MaxLife }()

		require.False(t, first.hitsFriend(game.East))
	})

	t.Run("matches the configured name", func(t *testing.T) {
		cfg := config.DefaultMole()
		cfg.FriendlyName = "miner"
		m := startMole(t, cfg, g, 1)

		require.False(t, m.hitsFriend(game.East))
		require.True(t, m.friends[3])
	})
}

func TestMolePhase(t *testing.T) {
	s := newSnapshot(t, 400, field...)
	s.Turn = 360
	g := hydrate(t, s)
	m := startMole(t, config.DefaultMole(), g, 1)

	require.Equal(t, endgame, m.phase())
	require.Equal(t, 55, m.hpThreshold(safe))
	require.Equal(t, 70, m.hpThreshold(danger))

	m.prevLife = 15
	m.detectRespawn()
	require.Equal(t, opening, m.phase(), "A fresh respawn plays like the opening")

	g.Turn = 380
	require.Equal(t, endgame, m.phase())
}

func TestMoleRespawnAfterThirst(t *testing.T) {
	s := newSnapshot(t, 400, field...)
	s.Turn = 360
	s.Heroes[0].Life = game.MaxLife - 3
	g := hydrate(t, s)
	m := startMole(t, config.DefaultMole(), g, 1)

	m.prevLife = 15
	m.detectRespawn()

	require.Equal(t, opening, m.phase(), "Three other heroes drank since the respawn")
}

func TestMoleDangerCheck(t *testing.T) {
	s := newSnapshot(t, 400, field...)
	s.Heroes[0].Position = game.Position{X: 1, Y: 1}
	s.Heroes[0].Life = 10
	s.Heroes[1].Position = game.Position{X: 2, Y: 1}
	s.Heroes[1].Life = 50
	g := hydrate(t, s)
	m := startMole(t, config.DefaultMole(), g, 1)

	require.True(t, m.intoDanger(game.East))
	require.False(t, m.intoDanger(game.South))
	require.Equal(t, game.North, m.saferThan(game.East))
}
