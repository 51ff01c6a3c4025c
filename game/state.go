package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type HeroState struct {
	Position
	Spawn     Position
	Life      int
	Gold      int
	MineCount int
	Crashed   bool
}

// Snapshot is a self-contained point in time of a game used by search and by
// the local referee. Heroes are indexed by id-1. Children produced by Clone
// link back to their parent together with the command that created them.
type Snapshot struct {
	Turn     int
	MaxTurns int
	Heroes   []HeroState
	Mines    map[Position]int // mine position -> owner id
	Parent   *Snapshot
	Command  Command

	m *Map
}

// NewSnapshot builds a root snapshot from live game data.
func NewSnapshot(g *Game) *Snapshot {
	s := &Snapshot{
		Turn:     g.Turn,
		MaxTurns: g.MaxTurns,
		Heroes:   make([]HeroState, len(g.Heroes)),
		Mines:    make(map[Position]int, len(g.Mines)),
		m:        g.Map,
	}
	for i, h := range g.Heroes {
		s.Heroes[i] = HeroState{
			Position:  h.Position,
			Spawn:     h.Spawn,
			Life:      h.Life,
			Gold:      h.Gold,
			MineCount: h.MineCount,
			Crashed:   h.Crashed,
		}
	}
	for _, mine := range g.Mines {
		s.Mines[mine.Position] = validOwner(mine.Owner, len(s.Heroes))
	}
	return s
}

// NewSnapshotFromLayout starts a fresh game on a decoded board. Heroes spawn
// on their @N markers with full life and no gold.
func NewSnapshotFromLayout(l *Layout, heroes, maxTurns int) (*Snapshot, error) {
	s := &Snapshot{
		MaxTurns: maxTurns,
		Heroes:   make([]HeroState, heroes),
		Mines:    make(map[Position]int, len(l.Mines)),
		m:        l.Map,
	}
	for i := range s.Heroes {
		spawn, ok := l.Heroes[i+1]
		if !ok {
			return nil, fmt.Errorf("board has no spawn for hero %d", i+1)
		}
		l.Map.set(spawn.X, spawn.Y, Spawn)
		s.Heroes[i] = HeroState{Position: spawn, Spawn: spawn, Life: MaxLife}
	}
	for _, mine := range l.Mines {
		s.Mines[mine.Position] = validOwner(mine.Owner, heroes)
	}
	return s, nil
}

func validOwner(owner, heroes int) int {
	if owner < 1 || owner > heroes {
		return NoOwner
	}
	return owner
}

func (s *Snapshot) Map() *Map {
	return s.m
}

// Clone copies hero records and mine ownership by value. The clone's parent
// is s.
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		Turn:     s.Turn,
		MaxTurns: s.MaxTurns,
		Heroes:   slices.Clone(s.Heroes),
		Mines:    maps.Clone(s.Mines),
		Parent:   s,
		m:        s.m,
	}
}

// ToMove is the index of the hero whose action the next ply represents.
func (s *Snapshot) ToMove() int {
	return s.Turn % len(s.Heroes)
}

// HeroID converts a hero index to its id.
func HeroID(index int) int {
	return index + 1
}

// Lineage returns the commands from the root of the chain down to s.
func (s *Snapshot) Lineage() []Command {
	return s.LineageFrom(nil)
}

// LineageFrom returns the commands from root (exclusive) down to s.
func (s *Snapshot) LineageFrom(root *Snapshot) []Command {
	var commands []Command
	for n := s; n != nil && n != root && n.Parent != nil; n = n.Parent {
		commands = append(commands, n.Command)
	}
	slices.Reverse(commands)
	return commands
}

// HeroAt returns the index of the hero standing on p, or -1.
func (s *Snapshot) HeroAt(p Position) int {
	for i, h := range s.Heroes {
		if h.Position == p {
			return i
		}
	}
	return -1
}

// Equal compares game data only. Parent links are ignored.
func (s *Snapshot) Equal(o *Snapshot) bool {
	return s.Turn == o.Turn &&
		s.MaxTurns == o.MaxTurns &&
		slices.Equal(s.Heroes, o.Heroes) &&
		maps.Equal(s.Mines, o.Mines) &&
		s.m == o.m
}

// Board renders the snapshot in the wire tile encoding.
func (s *Snapshot) Board() Board {
	size := s.m.Size()
	var sb strings.Builder
	sb.Grow(size * size * 2)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := Position{x, y}
			if i := s.HeroAt(p); i >= 0 {
				fmt.Fprintf(&sb, "@%d", HeroID(i))
				continue
			}
			switch s.m.At(x, y) {
			case Wall:
				sb.WriteString("##")
			case TavernTile:
				sb.WriteString("[]")
			case MineTile:
				if owner := s.Mines[p]; owner != NoOwner {
					fmt.Fprintf(&sb, "$%d", owner)
				} else {
					sb.WriteString("$-")
				}
			default:
				sb.WriteString("  ")
			}
		}
	}
	return Board{Size: size, Tiles: sb.String()}
}

// ToState renders the snapshot as the server state seen by heroID. names are
// indexed like Heroes and may be shorter.
func (s *Snapshot) ToState(gameID string, heroID int, names []string) *State {
	heroes := make([]HeroInfo, len(s.Heroes))
	for i, h := range s.Heroes {
		name := fmt.Sprintf("hero%d", HeroID(i))
		if i < len(names) {
			name = names[i]
		}
		heroes[i] = HeroInfo{
			ID:        HeroID(i),
			Name:      name,
			Pos:       ToPos(h.Position),
			Life:      h.Life,
			Gold:      h.Gold,
			MineCount: h.MineCount,
			SpawnPos:  ToPos(h.Spawn),
			Crashed:   h.Crashed,
		}
	}
	st := &State{
		Game: GameInfo{
			ID:       gameID,
			Turn:     s.Turn,
			MaxTurns: s.MaxTurns,
			Heroes:   heroes,
			Board:    s.Board(),
			Finished: s.Over(),
		},
	}
	if heroID >= 1 && heroID <= len(heroes) {
		st.Hero = heroes[heroID-1]
	}
	return st
}
