package game

import (
	"errors"
	"fmt"
)

var ErrOutOfBounds = errors.New("position out of bounds")

type Tile uint8

const (
	Empty Tile = iota
	Wall
	Spawn
	TavernTile
	MineTile
)

func (t Tile) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Spawn:
		return "Spawn"
	case TavernTile:
		return "Tavern"
	case MineTile:
		return "Mine"
	}
	return fmt.Sprintf("Tile(%d)", uint8(t))
}

// Walkable reports whether a hero can stand on the tile.
func (t Tile) Walkable() bool {
	return t == Empty || t == Spawn
}

// Map is the static terrain of a game. It is populated once by ParseBoard and
// read-only afterwards.
type Map struct {
	size  int
	tiles []Tile // row-major, index y*size + x
}

func newMap(size int) *Map {
	return &Map{size: size, tiles: make([]Tile, size*size)}
}

func (m *Map) Size() int {
	return m.size
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.size && y < m.size
}

// TileAt returns the tile at (x, y) or ErrOutOfBounds.
func (m *Map) TileAt(x, y int) (Tile, error) {
	if !m.InBounds(x, y) {
		return Empty, fmt.Errorf("tile (%d, %d) on %dx%d map: %w", x, y, m.size, m.size, ErrOutOfBounds)
	}
	return m.tiles[y*m.size+x], nil
}

// At is TileAt for callers that already checked the bounds. It panics otherwise.
func (m *Map) At(x, y int) Tile {
	t, err := m.TileAt(x, y)
	if err != nil {
		panic(err)
	}
	return t
}

func (m *Map) set(x, y int, t Tile) {
	m.tiles[y*m.size+x] = t
}
