package eval

import "commanderchess/internal/rules"

// advance returns how far p has pushed into enemy territory: 0 near its
// own back rank, growing toward rules.Rows-1 at the far edge.
func advance(side rules.Side, row int) int {
	if side == rules.Red {
		return row
	}
	return rules.Rows - 1 - row
}

// centerBonus rewards columns nearer the board's vertical middle, the
// same shape as the teacher's centerBonus but scaled to an 11-column
// board (mid column 5).
func centerBonus(col int) int {
	d := col - 5
	if d < 0 {
		d = -d
	}
	return 5 - d
}

// perKindBonus is the positional term for p, from p.Side's own
// perspective — positive is good for that side, the caller applies the
// red/blue sign. Mirrors piecePositionalBonus's per-kind dispatch shape.
func perKindBonus(p *rules.Piece) int {
	adv := advance(p.Side, p.Row)
	center := centerBonus(p.Col)

	switch p.Kind {
	case rules.Commander:
		b := 0
		if rules.IsHQ(p.Col, p.Row) {
			b += 10
		} else {
			b -= 6 * adv // a commander that has wandered forward is exposed
		}
		return b
	case rules.Headquarters:
		return 0
	case rules.Infantry:
		b := adv*3 + center*2
		if rules.CrossesRiver(homeRow(p.Side), p.Row) {
			b += 12
		}
		return b
	case rules.Militia:
		return adv*2 + center
	case rules.Tank:
		b := center * 3
		if adv >= 3 {
			b += 6
		}
		return b
	case rules.Engineer:
		b := center
		if p.CarrierID == 0 {
			b += 2
		}
		return b
	case rules.Artillery:
		return center*4 + adv
	case rules.AntiAir:
		return center * 2
	case rules.Missile:
		return center*3 + adv
	case rules.AirForce:
		return center*2 + adv*2
	case rules.Navy:
		b := adv
		if rules.IsSea(p.Col) {
			b += 2
		}
		return b
	}
	return 0
}

func homeRow(side rules.Side) int {
	if side == rules.Red {
		return 0
	}
	return rules.Rows - 1
}

// heroBonus rewards heroic status directly: a promoted piece fights
// better than its kind's baseline, so the evaluator should value it above
// plain material.
func heroBonus(k rules.Kind) int {
	switch k {
	case rules.Commander, rules.Headquarters:
		return 0
	default:
		return 40
	}
}
