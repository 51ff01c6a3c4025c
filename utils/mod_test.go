package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type point struct{ x, y int }

func (p point) Coords() (int, int) { return p.x, p.y }

func TestManhattan(t *testing.T) {
	require.Equal(t, 7, Manhattan(0, 0, 3, -4))
	require.Equal(t, 0, Manhattan(2, 2, 2, 2))
}

func TestOrderByDistance(t *testing.T) {
	items := []point{{4, 4}, {1, 0}, {0, 1}, {2, 2}}

	sorted := OrderByDistance(0, 0, items)

	require.Equal(t, []point{{1, 0}, {0, 1}, {2, 2}, {4, 4}}, sorted, "Ties keep their order")
	require.Equal(t, point{4, 4}, items[0], "The input is not modified")
}
