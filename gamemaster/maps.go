package gamemaster

import "vindinium/game"

// Maps are the built-in boards in CompactTiles rows. Every map has spawns
// for heroes 1 to 4.
var Maps = map[string][]string{
	"m1": {
		"1...##...2",
		"..$....$..",
		".T......T.",
		"....$$....",
		"#...##...#",
		"#...##...#",
		"....$$....",
		".T......T.",
		"..$....$..",
		"3...##...4",
	},
	"m2": {
		"1....##....2",
		"..$......$..",
		".##.T..T.##.",
		"....$..$....",
		"..#......#..",
		"$....##....$",
		"$....##....$",
		"..#......#..",
		"....$..$....",
		".##.T..T.##.",
		"..$......$..",
		"3....##....4",
	},
	"m3": {
		"1.....##.....2",
		"..$...##...$..",
		".##...TT...##.",
		"......$$......",
		"$..#......#..$",
		"....##..##....",
		"..T........T..",
		"..T........T..",
		"....##..##....",
		"$..#......#..$",
		"......$$......",
		".##...TT...##.",
		"..$...##...$..",
		"3.....##.....4",
	},
}

// Board returns the wire board of a built-in map.
func Board(name string) (game.Board, bool) {
	rows, ok := Maps[name]
	if !ok {
		return game.Board{}, false
	}
	return game.Board{Size: len(rows), Tiles: game.CompactTiles(rows...)}, true
}
