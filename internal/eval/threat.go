package eval

import "commanderchess/internal/rules"

// hangingPenalty charges a piece for being attacked: a fully undefended
// piece loses two thirds of its value, an outnumbered-but-defended piece
// of real value (over 200cp) loses a quarter — SEE itself is reserved for
// move ordering and quiescence, this is the cheap static proxy.
func hangingPenalty(c *Cache, p *rules.Piece) int {
	attackers := c.AttackCount(rules.Opposite(p.Side), p.Col, p.Row)
	if attackers == 0 {
		return 0
	}
	defenders := c.AttackCount(p.Side, p.Col, p.Row)
	val := p.Kind.Value()
	if defenders == 0 {
		return val * 2 / 3
	}
	if attackers > defenders && val > 200 {
		return val / 4
	}
	return 0
}

// navyAirSafety scores Navy and Air Force exposure more sharply than the
// general hanging penalty: both domains lose badly when outnumbered on
// their own square, Air Force especially so since it has nowhere to
// retreat to mid-flight.
func navyAirSafety(c *Cache, p *rules.Piece) int {
	atk := c.AttackCount(rules.Opposite(p.Side), p.Col, p.Row)
	def := c.AttackCount(p.Side, p.Col, p.Row)
	switch p.Kind {
	case rules.Navy:
		s := def*70 - atk*180
		if atk > def {
			s -= (atk - def) * 140
		}
		if rules.IsSea(p.Col) {
			s += 25
		}
		return s
	case rules.AirForce:
		s := def*65 - atk*180
		if atk > def {
			s -= (atk - def) * 300
		}
		return s
	}
	return 0
}

// antiAirCoverage rewards an Anti-Air unit for standing near enough to
// shield a friendly Air Force.
func antiAirCoverage(b *rules.Board, p *rules.Piece) int {
	if p.Kind != rules.AntiAir {
		return 0
	}
	bonus := 0
	for _, q := range b.Pieces {
		if q.Side != p.Side || q.Kind != rules.AirForce {
			continue
		}
		dist := manhattan(p.Col, p.Row, q.Col, q.Row)
		if dist <= 3 {
			bonus += 15
		}
		if dist <= 1 {
			bonus += 10
		}
	}
	return bonus
}

// missileProximity rewards a Missile for sitting within striking range of
// the enemy Commander.
func missileProximity(c *Cache, p *rules.Piece) int {
	if p.Kind != rules.Missile {
		return 0
	}
	enemy := int(rules.Opposite(p.Side))
	if !c.HasCommander[enemy] {
		return 0
	}
	sq := c.Commander[enemy]
	dist := manhattan(p.Col, p.Row, sq.Col, sq.Row)
	bonus := 0
	if dist <= 4 {
		bonus += 35
	}
	if dist <= 2 {
		bonus += 25
	}
	return bonus
}

func manhattan(c1, r1, c2, r2 int) int {
	dc := c1 - c2
	if dc < 0 {
		dc = -dc
	}
	dr := r1 - r2
	if dr < 0 {
		dr = -dr
	}
	return dc + dr
}

// cmdAttackerPenalty is the quadratic-shaped attacker-count penalty table:
// 0, 1, 2, ... attackers on the commander's square cost increasingly more,
// capped at 6 attackers.
var cmdAttackerPenalty = [7]int{0, 40, 120, 260, 450, 700, 1000}

// commanderSafety penalizes a commander for being under direct attack,
// sitting exposed in the opponent's anti-air coverage, or having
// abandoned its headquarters without cover. The attacker-count penalty is
// phase-scaled: it matters far more in the midgame than once material has
// thinned out.
func commanderSafety(c *Cache, side rules.Side, phase int) int {
	if !c.HasCommander[int(side)] {
		return 0
	}
	sq := c.Commander[int(side)]
	penalty := 0
	n := c.AttackCount(rules.Opposite(side), sq.Col, sq.Row)
	if n > 6 {
		n = 6
	}
	penalty += cmdAttackerPenalty[n] * (128 + phase) / 256
	if c.CommanderInAntiAirRing(side) {
		penalty += 20
	}
	if !rules.IsHQ(sq.Col, sq.Row) {
		penalty += 15
	}
	return penalty
}

// commanderPressure scores how hard side is squeezing the enemy
// commander: direct attackers weighted by a phase-scaled factor, minus
// defenders, plus a ring-control differential around the commander's
// square, minus the escape squares still open within that ring.
func commanderPressure(c *Cache, b *rules.Board, side rules.Side, phase int) int {
	enemy := rules.Opposite(side)
	if !c.HasCommander[int(enemy)] {
		return 0
	}
	sq := c.Commander[int(enemy)]
	weight := 110
	if phase > 128 {
		weight = 150
	}
	pressure := c.AttackCount(side, sq.Col, sq.Row)*weight - c.AttackCount(enemy, sq.Col, sq.Row)*18

	ringDiff, ringEscape := 0, 0
	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			if dc == 0 && dr == 0 {
				continue
			}
			cc, rr := sq.Col+dc, sq.Row+dr
			if !rules.InBounds(cc, rr) {
				continue
			}
			ringDiff += c.AttackCount(side, cc, rr) - c.AttackCount(enemy, cc, rr)
			occ := b.PieceAt(cc, rr)
			if occ == nil || occ.Side != enemy {
				ringEscape++
			}
		}
	}
	pressure += ringDiff * 18
	pressure -= ringEscape * 12
	return pressure
}

// navyStrat smooths the non-linear value jump between fielding one navy
// and fielding two.
var navyStrat = [3]int{-2000, 600, 2500}

// strategicObjectives scores the navy/air-force/land-unit balance between
// the two sides: each domain rewards parity and heavily punishes fielding
// none of it at all.
func strategicObjectives(pos *rules.Position) int {
	var navy, af, land [2]int
	for _, p := range pos.Board.Pieces {
		side := int(p.Side)
		switch p.Kind {
		case rules.Navy:
			navy[side]++
		case rules.AirForce:
			af[side]++
		case rules.Artillery, rules.Tank, rules.Infantry:
			land[side]++
		}
	}

	red, blue := int(rules.Red), int(rules.Blue)
	score := navyStrat[minInt(navy[red], 2)] - navyStrat[minInt(navy[blue], 2)]

	score += (af[red] - af[blue]) * 700
	if af[red] == 1 {
		score -= 450
	}
	if af[blue] == 1 {
		score += 450
	}
	if af[red] == 0 {
		score -= 1200
	}
	if af[blue] == 0 {
		score += 1200
	}

	score += (land[red] - land[blue]) * 220
	if land[red] <= 2 {
		score -= 350
	}
	if land[blue] <= 2 {
		score += 350
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// pairSynergy rewards fielding both pieces of a pair — two Navies, two Air
// Forces, two Tanks — distinct from the per-piece carrier synergy term,
// which rewards a single piece for being ferried.
func pairSynergy(pos *rules.Position) int {
	var navy, af, tank [2]int
	for _, p := range pos.Board.Pieces {
		side := int(p.Side)
		switch p.Kind {
		case rules.Navy:
			navy[side]++
		case rules.AirForce:
			af[side]++
		case rules.Tank:
			tank[side]++
		}
	}
	red, blue := int(rules.Red), int(rules.Blue)
	score := 0
	if navy[red] == 2 {
		score += 100
	}
	if navy[blue] == 2 {
		score -= 100
	}
	if af[red] == 2 {
		score += 80
	}
	if af[blue] == 2 {
		score -= 80
	}
	if tank[red] == 2 {
		score += 50
	}
	if tank[blue] == 2 {
		score -= 50
	}
	return score
}

// mobilityProxy counts attacked squares as a stand-in for legal-move
// count — cheaper than generating and filtering a full move list at
// every node, and the attack cache already paid for the scan.
func mobilityProxy(c *Cache, side rules.Side) int {
	total := 0
	for _, n := range c.AttackedBy[int(side)] {
		total += int(n)
	}
	return total
}

// synergy rewards combinations the rules make strong together: a ferried
// unit gains the carrier's mobility, and a carrier gains a reason to keep
// its cargo rather than drop it early.
func synergy(b *rules.Board, p *rules.Piece) int {
	if p.CarrierID == 0 {
		return 0
	}
	switch p.Kind {
	case rules.AntiAir, rules.Artillery, rules.Missile:
		return 10 // engineer ferry mid-crossing
	case rules.Tank, rules.Infantry, rules.Militia, rules.Engineer, rules.Commander:
		return 6 // riding navy/air force/tank
	}
	return 0
}

// objectiveProximity rewards mobile attackers for closing on either of
// the enemy's headquarters squares, giving the evaluator a sense of
// direction beyond raw material and local safety.
func objectiveProximity(p *rules.Piece) int {
	switch p.Kind {
	case rules.Headquarters, rules.Commander:
		return 0
	}
	targetRow := rules.Rows - 1
	if p.Side == rules.Blue {
		targetRow = 0
	}
	best := chebyshevTo(p.Col, p.Row, 4, targetRow)
	if d := chebyshevTo(p.Col, p.Row, 6, targetRow); d < best {
		best = d
	}
	return (rules.Rows - best) / 2
}

func chebyshevTo(col, row, targetCol, targetRow int) int {
	dc := col - targetCol
	if dc < 0 {
		dc = -dc
	}
	dr := row - targetRow
	if dr < 0 {
		dr = -dr
	}
	if dc > dr {
		return dc
	}
	return dr
}
