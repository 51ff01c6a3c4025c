package game

// Wire types of the Vindinium HTTP API. The server swaps axes: Pos.X is the
// row and Pos.Y the column.

type State struct {
	Game    GameInfo `json:"game"`
	Hero    HeroInfo `json:"hero"`
	Token   string   `json:"token"`
	ViewURL string   `json:"viewUrl"`
	PlayURL string   `json:"playUrl"`
}

type GameInfo struct {
	ID       string     `json:"id"`
	Turn     int        `json:"turn"`
	MaxTurns int        `json:"maxTurns"`
	Heroes   []HeroInfo `json:"heroes"`
	Board    Board      `json:"board"`
	Finished bool       `json:"finished"`
}

type Board struct {
	Size  int    `json:"size"`
	Tiles string `json:"tiles"`
}

type HeroInfo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UserID    string `json:"userId,omitempty"`
	Elo       int    `json:"elo,omitempty"`
	Pos       Pos    `json:"pos"`
	LastDir   string `json:"lastDir,omitempty"`
	Life      int    `json:"life"`
	Gold      int    `json:"gold"`
	MineCount int    `json:"mineCount"`
	SpawnPos  Pos    `json:"spawnPos"`
	Crashed   bool   `json:"crashed"`
}

type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToPosition converts a wire position to map coordinates.
func (p Pos) ToPosition() Position {
	return Position{X: p.Y, Y: p.X}
}

// ToPos converts map coordinates to a wire position.
func ToPos(p Position) Pos {
	return Pos{X: p.Y, Y: p.X}
}
