package bot

import (
	"sort"

	"vindinium/config"
	"vindinium/game"
	"vindinium/utils"

	"golang.org/x/exp/rand"
)

type phase int

const (
	opening phase = iota
	midgame
	endgame
)

const (
	safe = iota
	caution
	danger
	critical
)

// Mole is a survival focused miner. Each turn it walks down a priority list:
// heal at an adjacent tavern, flee a losing fight, heal when life is below a
// phase dependent threshold, finish off a weak enemy, then mine. Heroes with
// the same name are treated as allies.
type Mole struct {
	cfg config.MoleConfig
	nav navigator

	g    *game.Game
	hero *game.Hero

	friends     map[int]bool
	prevLife    int
	respawnTurn int // -1 until the first respawn
}

func NewMole(cfg config.MoleConfig, rng *rand.Rand) *Mole {
	return &Mole{cfg: cfg, nav: navigator{rng: rng}, respawnTurn: -1}
}

func (b *Mole) Start(g *game.Game, hero *game.Hero) {
	b.g, b.hero = g, hero
	b.nav.reset(g.Map)
	b.prevLife = hero.Life
	b.respawnTurn = -1

	b.friends = map[int]bool{}
	if !b.cfg.FriendlyFireAvoidance {
		return
	}
	name := b.cfg.FriendlyName
	if name == "" {
		name = hero.Name
	}
	for _, h := range g.Heroes {
		if h.ID != hero.ID && h.Name == name {
			b.friends[h.ID] = true
		}
	}
}

func (b *Mole) End() {}

func (b *Mole) Move(g *game.Game, hero *game.Hero) game.Command {
	if b.g != g || b.friends == nil {
		b.Start(g, hero)
	}
	cmd := b.decide()
	b.prevLife = hero.Life
	return cmd
}

func (b *Mole) decide() game.Command {
	b.detectRespawn()

	if tavern := b.healNearby(); tavern != nil {
		cmd, _ := game.PathToCommand(b.hero.Position, tavern.Position)
		return cmd
	}

	level, enemy := b.dangerLevel()
	if level >= b.cfg.FleeDangerThreshold || b.pubFight(enemy) {
		if cmd := b.flee(enemy); cmd != game.Stay {
			return cmd
		}
		if b.hero.Gold >= game.TavernCost {
			return b.nav.nearestTavern(b.g, b.hero)
		}
	}

	if b.hero.Life < b.hpThreshold(level) && b.hero.Gold >= game.TavernCost {
		return b.nav.nearestTavern(b.g, b.hero)
	}

	if target := b.killTarget(); target != nil {
		if cmd, ok := b.nav.goTo(b.hero.Position, target.Position); ok && cmd != game.Stay {
			return cmd
		}
	}

	cmd := b.nearestMine()
	if b.cfg.DangerCheckEnabled && b.hero.Life < b.cfg.DangerCheckHPThreshold && b.intoDanger(cmd) {
		cmd = b.saferThan(cmd)
	}
	if b.hitsFriend(cmd) {
		return game.Stay
	}
	return cmd
}

// detectRespawn notices a jump from near death to full life, less the thirst
// of the turns since our last move.
func (b *Mole) detectRespawn() {
	if !b.cfg.RespawnDetectionEnabled {
		return
	}
	if b.prevLife <= game.AttackPower && b.hero.Life > game.MaxLife-len(b.g.Heroes) {
		b.respawnTurn = b.g.Turn
	}
}

func (b *Mole) phase() phase {
	if b.cfg.RespawnDetectionEnabled && b.respawnTurn >= 0 && b.g.Turn-b.respawnTurn < b.cfg.RespawnAggressiveTurns {
		return opening
	}
	progress := 0.0
	if b.g.MaxTurns > 0 {
		progress = float64(b.g.Turn) / float64(b.g.MaxTurns)
	}
	switch {
	case progress < b.cfg.PhaseOpeningEnd:
		return opening
	case progress < b.cfg.PhaseMidEnd:
		return midgame
	}
	return endgame
}

func (b *Mole) hpThreshold(level int) int {
	threshold := b.cfg.HPThresholdEnd
	switch b.phase() {
	case opening:
		threshold = b.cfg.HPThresholdOpening
	case midgame:
		threshold = b.cfg.HPThresholdMid
	}
	if level >= caution {
		threshold += b.cfg.DangerHPModifier
	}
	return threshold
}

// remainingTurns counts the moves left for this hero.
func (b *Mole) remainingTurns() int {
	return (b.g.MaxTurns - b.g.Turn) / len(b.g.Heroes)
}

func (b *Mole) enemies() []*game.Hero {
	var enemies []*game.Hero
	for _, h := range b.g.Heroes {
		if h.ID == b.hero.ID || b.friends[h.ID] || h.Crashed {
			continue
		}
		enemies = append(enemies, h)
	}
	return enemies
}

// dangerLevel grades the closest enemy within three steps.
func (b *Mole) dangerLevel() (int, *game.Hero) {
	var closest *game.Hero
	best := 0
	for _, e := range b.enemies() {
		d := b.hero.Distance(e.Position)
		if d <= 3 && (closest == nil || d < best) {
			closest, best = e, d
		}
	}
	if closest == nil {
		return safe, nil
	}
	switch {
	case best == 1 && b.dangerous(closest, best):
		return critical, closest
	case best == 2 && b.dangerous(closest, best):
		return danger, closest
	}
	return caution, closest
}

func (b *Mole) dangerous(enemy *game.Hero, distance int) bool {
	life := b.hero.Life
	switch distance {
	case 1:
		return life <= game.AttackPower || enemy.Life >= life
	case 2:
		return life <= 2*game.AttackPower && enemy.Life > life
	}
	return false
}

// pubFight reports an adjacent enemy standing next to a tavern, who can heal
// mid fight.
func (b *Mole) pubFight(enemy *game.Hero) bool {
	if enemy == nil || b.hero.Distance(enemy.Position) != 1 {
		return false
	}
	for _, t := range b.g.Taverns {
		if t.Distance(enemy.Position) <= 1 {
			return true
		}
	}
	return false
}

func (b *Mole) healNearby() *game.Tavern {
	if b.hero.Gold < game.TavernCost {
		return nil
	}
	var tavern *game.Tavern
	for _, t := range b.g.Taverns {
		if b.hero.Distance(t.Position) == 1 {
			tavern = t
			break
		}
	}
	if tavern == nil {
		return nil
	}
	if level, _ := b.dangerLevel(); level >= danger && b.hero.Life < game.MaxLife {
		return tavern
	}
	if b.hero.Life < b.cfg.NearbyTavernHealThreshold {
		return tavern
	}
	return nil
}

func (b *Mole) after(cmd game.Command) game.Position {
	return b.hero.Add(cmd.Dir())
}

func (b *Mole) walkable(p game.Position) bool {
	return b.g.Map.InBounds(p.X, p.Y) && b.g.Map.At(p.X, p.Y).Walkable()
}

// flee runs away along the main axis first, then sideways.
func (b *Mole) flee(enemy *game.Hero) game.Command {
	if enemy == nil {
		return game.Stay
	}
	dx := b.hero.X - enemy.X
	dy := b.hero.Y - enemy.Y
	var options []game.Command
	if utils.Abs(dx) >= utils.Abs(dy) {
		switch {
		case dx > 0:
			options = []game.Command{game.East, game.North, game.South, game.West}
		case dx < 0:
			options = []game.Command{game.West, game.North, game.South, game.East}
		default:
			options = []game.Command{game.North, game.South, game.East, game.West}
		}
	} else {
		if dy > 0 {
			options = []game.Command{game.South, game.East, game.West, game.North}
		} else {
			options = []game.Command{game.North, game.East, game.West, game.South}
		}
	}
	for _, cmd := range options {
		if b.walkable(b.after(cmd)) && !b.hitsEnemy(cmd) && !b.hitsFriend(cmd) {
			return cmd
		}
	}
	return game.Stay
}

func (b *Mole) hitsEnemy(cmd game.Command) bool {
	p := b.after(cmd)
	for _, e := range b.enemies() {
		if e.Position == p {
			return true
		}
	}
	return false
}

// hitsFriend reports whether cmd would strike an ally. On a collision the
// lower id yields, unless its life is critical.
func (b *Mole) hitsFriend(cmd game.Command) bool {
	if !b.cfg.FriendlyFireAvoidance {
		return false
	}
	p := b.after(cmd)
	for _, h := range b.g.Heroes {
		if h.ID == b.hero.ID || !b.friends[h.ID] || h.Position != p {
			continue
		}
		if b.hero.Life < 25 {
			return false
		}
		return b.hero.ID < h.ID
	}
	return false
}

func (b *Mole) worthKilling(enemy *game.Hero, distance int) bool {
	if distance > b.cfg.OpportunisticKillMaxDistance || b.hero.Life < b.cfg.OpportunisticKillMinOurHP {
		return false
	}
	// Mine rich enemies are worth chasing with more life left.
	modifier := 1.0
	if enemy.MineCount > 1 {
		modifier = float64(enemy.MineCount) / 2
	}
	if float64(enemy.Life) > modifier*float64(b.cfg.OpportunisticKillEnemyHPThreshold) {
		return false
	}
	if b.hero.Life < enemy.Life+b.cfg.OpportunisticKillHPAdvantage {
		return false
	}
	return enemy.MineCount >= b.cfg.OpportunisticKillMinEnemyMines
}

// killTarget picks the weak enemy with the most mines, then the least life,
// then the shortest distance.
func (b *Mole) killTarget() *game.Hero {
	if !b.cfg.OpportunisticKillsEnabled {
		return nil
	}
	type candidate struct {
		hero     *game.Hero
		distance int
	}
	var candidates []candidate
	for _, e := range b.enemies() {
		d := b.hero.Distance(e.Position)
		if b.worthKilling(e, d) {
			candidates = append(candidates, candidate{e, d})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, c := candidates[i], candidates[j]
		if a.hero.MineCount != c.hero.MineCount {
			return a.hero.MineCount > c.hero.MineCount
		}
		if a.hero.Life != c.hero.Life {
			return a.hero.Life < c.hero.Life
		}
		return a.distance < c.distance
	})
	return candidates[0].hero
}

// worthTaking checks that a mine pays back the trip and the capture.
func (b *Mole) worthTaking(m *game.Mine) bool {
	distance := b.hero.Distance(m.Position)
	remaining := b.remainingTurns()
	if distance >= remaining || remaining-distance < b.cfg.MinTurnsToHoldMine {
		return false
	}
	return b.hero.Life >= distance+game.MineCost+5
}

func (b *Mole) nearestMine() game.Command {
	var targets []*game.Mine
	for _, m := range b.g.Mines {
		if m.Owner == b.hero.ID || b.friends[m.Owner] || !b.worthTaking(m) {
			continue
		}
		targets = append(targets, m)
	}
	if cmd, ok := goToNearest(&b.nav, b.hero.Position, targets); ok {
		return cmd
	}
	return b.nav.random()
}

// intoDanger reports a move that attacks an enemy we cannot beat.
func (b *Mole) intoDanger(cmd game.Command) bool {
	p := b.after(cmd)
	for _, e := range b.enemies() {
		if e.Position != p {
			continue
		}
		if e.Life <= game.AttackPower || b.hero.Life > e.Life {
			return false
		}
		if b.hero.Life <= game.AttackPower {
			return true
		}
	}
	return false
}

func (b *Mole) saferThan(original game.Command) game.Command {
	for _, cmd := range []game.Command{game.North, game.South, game.East, game.West} {
		if cmd == original {
			continue
		}
		if !b.intoDanger(cmd) && !b.hitsFriend(cmd) && b.walkable(b.after(cmd)) {
			return cmd
		}
	}
	if b.cfg.AllowStayAsFallback {
		return game.Stay
	}
	return original
}
