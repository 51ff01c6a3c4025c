package utils

import (
	"slices"
)

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func Manhattan(x0, y0, x1, y1 int) int {
	return Abs(x0-x1) + Abs(y0-y1)
}

type Locatable interface {
	Coords() (int, int)
}

// OrderByDistance returns a copy of items sorted by Manhattan distance from
// (x, y). Equal distances keep their input order.
func OrderByDistance[T Locatable](x, y int, items []T) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		ax, ay := a.Coords()
		bx, by := b.Coords()
		return Manhattan(x, y, ax, ay) - Manhattan(x, y, bx, by)
	})
	return sorted
}
