package game

// Play applies cmd for the hero to move.
func (s *Snapshot) Play(cmd Command) *Snapshot {
	return s.Apply(s.ToMove(), cmd)
}

// Apply returns the successor of s after hero (an index into Heroes) issues
// cmd. s itself is never modified. Bumping into walls, heroes, mines and
// taverns are regular actions, not errors.
//
// Every action first drains one life from every hero (thirst never kills),
// then resolves the command. Mines pay their owners once per full round.
func (s *Snapshot) Apply(hero int, cmd Command) *Snapshot {
	next := s.Clone()
	next.Command = cmd
	next.thirst()

	h := &next.Heroes[hero]
	if h.Crashed {
		cmd = Stay
	}
	dx, dy := cmd.Dir()
	target := h.Position.Add(dx, dy)

	if target != h.Position && next.m.InBounds(target.X, target.Y) {
		if other := next.HeroAt(target); other >= 0 && other != hero {
			next.attack(other)
		} else {
			switch next.m.At(target.X, target.Y) {
			case Wall:
			case MineTile:
				next.mine(hero, target)
			case TavernTile:
				if h.Gold >= TavernCost {
					h.Gold -= TavernCost
					h.Life = MaxLife
				}
			default:
				h.Position = target
			}
		}
	}

	next.Turn++
	if next.Turn%len(next.Heroes) == 0 {
		next.payMines()
	}
	return next
}

func (s *Snapshot) attack(victim int) {
	s.Heroes[victim].Life -= AttackPower
	if s.Heroes[victim].Life <= 0 {
		s.respawn(victim)
	}
}

func (s *Snapshot) mine(hero int, p Position) {
	id := HeroID(hero)
	owner := s.Mines[p]
	if owner == id {
		return
	}
	h := &s.Heroes[hero]
	h.Life -= MineCost
	if h.Life <= 0 {
		s.respawn(hero)
		return
	}
	if owner != NoOwner {
		s.Heroes[owner-1].MineCount--
	}
	s.Mines[p] = id
	h.MineCount++
}

// respawn kills a hero: its mines become unowned and it returns to its spawn
// with full life. A hero standing on that spawn dies too.
func (s *Snapshot) respawn(hero int) {
	id := HeroID(hero)
	for p, owner := range s.Mines {
		if owner == id {
			s.Mines[p] = NoOwner
		}
	}
	h := &s.Heroes[hero]
	h.MineCount = 0
	h.Life = MaxLife
	h.Position = h.Spawn
	for i := range s.Heroes {
		if i != hero && s.Heroes[i].Position == h.Spawn {
			s.respawn(i)
		}
	}
}

func (s *Snapshot) thirst() {
	for i := range s.Heroes {
		if s.Heroes[i].Life > 1 {
			s.Heroes[i].Life--
		}
	}
}

func (s *Snapshot) payMines() {
	for i := range s.Heroes {
		s.Heroes[i].Gold += s.Heroes[i].MineCount
	}
}

// Over reports whether the game ran out of turns.
func (s *Snapshot) Over() bool {
	return s.MaxTurns > 0 && s.Turn >= s.MaxTurns
}
