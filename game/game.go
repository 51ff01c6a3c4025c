package game

import (
	"fmt"
	"strings"
)

type Game struct {
	ID       string
	Turn     int
	MaxTurns int // counts single hero actions, not rounds
	Finished bool
	Map      *Map
	Heroes   []*Hero
	Mines    []*Mine
	Taverns  []*Tavern
}

// Layout is the static content decoded from a board tile string.
type Layout struct {
	Map     *Map
	Mines   []*Mine
	Taverns []*Tavern
	Heroes  map[int]Position // @N markers
}

// ParseBoard decodes a tile string of two characters per tile, row by row.
func ParseBoard(b Board) (*Layout, error) {
	if b.Size <= 0 {
		return nil, fmt.Errorf("invalid board size %d", b.Size)
	}
	if len(b.Tiles) != b.Size*b.Size*2 {
		return nil, fmt.Errorf("board of size %d needs %d tile chars, got %d", b.Size, b.Size*b.Size*2, len(b.Tiles))
	}

	l := &Layout{Map: newMap(b.Size), Heroes: map[int]Position{}}
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			i := (y*b.Size + x) * 2
			code := b.Tiles[i : i+2]
			switch {
			case code == "##":
				l.Map.set(x, y, Wall)
			case code == "[]":
				l.Map.set(x, y, TavernTile)
				l.Taverns = append(l.Taverns, &Tavern{Position{x, y}})
			case code[0] == '$':
				l.Map.set(x, y, MineTile)
				l.Mines = append(l.Mines, &Mine{Position: Position{x, y}, Owner: ownerOf(code[1], MaxHeroes)})
			case code[0] == '@':
				l.Heroes[int(code[1]-'0')] = Position{x, y}
			}
		}
	}
	return l, nil
}

// ownerOf reads the owner char of a mine tile. Anything but a hero id
// between 1 and heroes is unowned.
func ownerOf(c byte, heroes int) int {
	owner := int(c - '0')
	if c < '1' || c > '9' || owner > heroes {
		return NoOwner
	}
	return owner
}

// NewGame hydrates typed entities from a server state. Every hero spawn is
// marked as a Spawn tile.
func NewGame(s *State) (*Game, error) {
	l, err := ParseBoard(s.Game.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}
	g := &Game{
		ID:      s.Game.ID,
		Map:     l.Map,
		Mines:   l.Mines,
		Taverns: l.Taverns,
	}
	for _, h := range s.Game.Heroes {
		spawn := h.SpawnPos.ToPosition()
		if !g.Map.InBounds(spawn.X, spawn.Y) {
			return nil, fmt.Errorf("hero %d spawn %v: %w", h.ID, spawn, ErrOutOfBounds)
		}
		g.Map.set(spawn.X, spawn.Y, Spawn)
		g.Heroes = append(g.Heroes, &Hero{ID: h.ID, Name: h.Name, UserID: h.UserID, Elo: h.Elo, Spawn: spawn})
	}
	g.Update(s)
	return g, nil
}

// Update refreshes turn data in place. Hero and mine pointers stay valid.
func (g *Game) Update(s *State) {
	g.Turn = s.Game.Turn
	g.MaxTurns = s.Game.MaxTurns
	g.Finished = s.Game.Finished
	for i, hs := range s.Game.Heroes {
		if i >= len(g.Heroes) {
			break
		}
		h := g.Heroes[i]
		h.Position = hs.Pos.ToPosition()
		h.Life = hs.Life
		h.Gold = hs.Gold
		h.MineCount = hs.MineCount
		h.Crashed = hs.Crashed
		h.LastDir = hs.LastDir
	}
	size := s.Game.Board.Size
	tiles := s.Game.Board.Tiles
	for _, m := range g.Mines {
		i := (m.Y*size+m.X)*2 + 1
		if i < len(tiles) {
			m.Owner = ownerOf(tiles[i], len(g.Heroes))
		}
	}
}

// Hero returns the hero with the given id or nil.
func (g *Game) Hero(id int) *Hero {
	for _, h := range g.Heroes {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// HeroAt returns the hero standing on p or nil.
func (g *Game) HeroAt(p Position) *Hero {
	for _, h := range g.Heroes {
		if h.Position == p {
			return h
		}
	}
	return nil
}

func (g *Game) String() string {
	var sb strings.Builder
	border := " " + strings.Repeat("-", g.Map.Size()) + "\n"
	sb.WriteString(border)
	for y := 0; y < g.Map.Size(); y++ {
		sb.WriteByte('|')
		for x := 0; x < g.Map.Size(); x++ {
			tile := g.Map.At(x, y)
			hero := g.HeroAt(Position{x, y})
			switch {
			case tile == Wall:
				sb.WriteByte('.')
			case hero != nil:
				fmt.Fprintf(&sb, "%d", hero.ID)
			case tile == Spawn:
				sb.WriteByte('s')
			case tile == MineTile:
				sb.WriteByte('M')
			case tile == TavernTile:
				sb.WriteByte('T')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(strings.TrimSuffix(border, "\n"))
	return sb.String()
}

// CompactTiles expands one-char rows into the two-char wire encoding:
// '#' wall, 'T' tavern, '$' mine, '1'-'4' hero, anything else empty.
func CompactTiles(rows ...string) string {
	var sb strings.Builder
	for _, row := range rows {
		for _, c := range row {
			switch {
			case c == '#':
				sb.WriteString("##")
			case c == 'T':
				sb.WriteString("[]")
			case c == '$':
				sb.WriteString("$-")
			case c >= '1' && c <= '4':
				sb.WriteByte('@')
				sb.WriteRune(c)
			default:
				sb.WriteString("  ")
			}
		}
	}
	return sb.String()
}
