package search

import "commanderchess/internal/rules"

// maxExtension caps the total extension granted to a single move, per
// §4.11: "Capped at +2."
const maxExtension = 2

// extend applies the rule-aware extensions of §4.11: the mover's own
// Commander being attacked, a fresh attack on the enemy Commander, a Navy
// being captured (one more when it was that side's last Navy), and any
// capture made by a Navy, plus the singular-move bump when mv is the TT
// move at sufficient depth. There is no recapture extension. All
// contributions are summed and then capped.
func (t *ThreadData) extend(pos, child *rules.Position, mv rules.Move, depth, ply int, ttMove rules.Move, ttHit bool) int {
	ext := 0
	target := pos.Board.PieceAt(mv.DestCol, mv.DestRow)
	mover := pos.Board.ByID(mv.PieceID)

	wasInCheck := rules.CommanderInCheck(pos.Board, pos.SideToMove)
	nowInCheck := rules.CommanderInCheck(child.Board, child.SideToMove)

	if wasInCheck {
		ext++
	}
	if nowInCheck && depth >= 3 {
		ext++
	}

	if target != nil {
		switch target.Kind {
		case rules.Navy:
			ext++
			if child.Board.CountAlive(target.Side, rules.Navy) == 0 {
				ext++ // the last navy falling is always worth a closer look
			}
		case rules.Commander:
			// already decided by CheckTerminal; no extra extension needed.
		}
	}

	if mover.Kind == rules.Navy && target != nil {
		ext++ // any capture made by a Navy, not only navy-vs-navy exchanges
	}

	if depth >= 5 && ttHit && sameMove(mv, ttMove) {
		if singular(t, pos, mv, depth, ply) {
			ext++
		}
	}

	if ext > maxExtension {
		ext = maxExtension
	}
	return ext
}

// singular reports whether mv beats every sibling move by a wide margin at
// a reduced verification depth — the usual singular-extension test,
// simplified to a single probe rather than the teacher's full exclusion
// loop, since this engine's branching factor per node is modest.
func singular(t *ThreadData, pos *rules.Position, mv rules.Move, depth, ply int) bool {
	mover := pos.Board.ByID(mv.PieceID)
	if mover == nil {
		return false
	}
	child, ok := rules.Apply(pos, mv)
	if !ok {
		return false
	}
	maximizing := pos.SideToMove == rules.Red
	singularDepth := depth/2 - 1
	if singularDepth < 1 {
		return false
	}
	candidateScore := t.Search(child, singularDepth, -scoreInf, scoreInf, ply+1, true, mv, mover.Kind)

	moves := rules.GenerateMoves(pos.Board, pos.SideToMove)
	margin := depth
	for _, sib := range moves {
		if sameMove(sib, mv) {
			continue
		}
		sc, ok := rules.Apply(pos, sib)
		if !ok {
			continue
		}
		score := t.Search(sc, singularDepth, -scoreInf, scoreInf, ply+1, true, sib, pos.Board.ByID(sib.PieceID).Kind)
		if maximizing {
			if score >= candidateScore-margin {
				return false
			}
		} else {
			if score <= candidateScore+margin {
				return false
			}
		}
	}
	return true
}
