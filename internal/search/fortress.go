package search

import "commanderchess/internal/rules"

// Fortress is the low-depth special-outcome recognizer of §4.9: it fires
// only when little search depth remains, so its cost (a terminal check
// plus a cheap mobility/progress scan) never dominates a node budget that
// would otherwise go to real search.
//
// It returns (score, true) when it has a confident verdict — an already-
// decided objective, or a practical draw — and (0, false) when it
// declines, leaving the caller to continue normal search.
func Fortress(pos *rules.Position, depth int) (int, bool) {
	redWins := objectiveComplete(pos, rules.Red)
	blueWins := objectiveComplete(pos, rules.Blue)
	switch {
	case redWins && blueWins:
		return 0, true
	case redWins:
		return mateBase + 80*depth, true
	case blueWins:
		return -(mateBase + 80*depth), true
	}

	if practicalDraw(pos) {
		return 0, true
	}
	return 0, false
}

// objectiveComplete reports whether side already satisfies its mode's win
// condition outright (the domain-elimination side of §3.4) — the opposite
// side is the one that has run out of the targeted domain.
func objectiveComplete(pos *rules.Position, side rules.Side) bool {
	enemy := rules.Opposite(side)
	b := pos.Board
	switch pos.Mode {
	case rules.ModeMarine:
		return b.CountAlive(enemy, rules.Navy) == 0 && b.CountAlive(side, rules.Navy) > 0
	case rules.ModeAir:
		return b.CountAlive(enemy, rules.AirForce) == 0 && b.CountAlive(side, rules.AirForce) > 0
	case rules.ModeLand:
		return b.CountAlive(enemy,
			rules.Infantry, rules.Militia, rules.Tank, rules.Engineer,
			rules.Artillery, rules.AntiAir, rules.Missile) == 0
	}
	return false
}

// practicalDraw approximates §4.9's fortress signature: both commanders
// safe, few active pieces left, no available captures, low mobility, and
// no progress toward either commander — or a heavily stacked carrier
// loop, which tends to shuffle forever without either side committing.
func practicalDraw(pos *rules.Position) bool {
	b := pos.Board
	if rules.CommanderInCheck(b, rules.Red) || rules.CommanderInCheck(b, rules.Blue) {
		return false
	}

	active := 0
	carried := 0
	for _, p := range b.Pieces {
		if p.Kind == rules.Headquarters {
			continue
		}
		active++
		if p.CarrierID != 0 {
			carried++
		}
	}
	if carried >= 4 {
		return true
	}
	if active > 12 {
		return false
	}

	redMoves := rules.GenerateMoves(b, rules.Red)
	blueMoves := rules.GenerateMoves(b, rules.Blue)
	if len(redMoves) > 18 || len(blueMoves) > 18 {
		return false
	}
	if hasCapture(b, redMoves) || hasCapture(b, blueMoves) {
		return false
	}

	redCmd := b.Commander(rules.Red)
	blueCmd := b.Commander(rules.Blue)
	if redCmd == nil || blueCmd == nil {
		return false
	}
	progress := 0
	for _, mv := range redMoves {
		if closerTo(mv, blueCmd.Col, blueCmd.Row, pos.Board.ByID(mv.PieceID)) {
			progress++
		}
	}
	for _, mv := range blueMoves {
		if closerTo(mv, redCmd.Col, redCmd.Row, pos.Board.ByID(mv.PieceID)) {
			progress++
		}
	}
	return progress <= 1
}

func hasCapture(b *rules.Board, moves []rules.Move) bool {
	for _, mv := range moves {
		if b.PieceAt(mv.DestCol, mv.DestRow) != nil {
			return true
		}
	}
	return false
}

func closerTo(mv rules.Move, targetCol, targetRow int, mover *rules.Piece) bool {
	if mover == nil {
		return false
	}
	before := manhattan(mover.Col, mover.Row, targetCol, targetRow)
	after := manhattan(mv.DestCol, mv.DestRow, targetCol, targetRow)
	return after < before
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
