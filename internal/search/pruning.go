package search

import "commanderchess/internal/rules"

// nullMove flips side to move without changing anything else on the
// board — the cheapest possible "what if I get a free tempo" probe.
// Commander Chess has no en-passant/castling-rights analogue to clear, so
// this is simpler than the teacher's chess equivalent: clone, flip,
// rehash.
func nullMove(pos *rules.Position) *rules.Position {
	np := pos.Clone()
	np.SideToMove = rules.Opposite(np.SideToMove)
	np.Hash = rules.Hash(np.Board, np.SideToMove)
	return np
}

// tryNullMove runs the null-move reduction of §4.11 and reports whether it
// produced a cutoff (score already at least as good as beta for the
// maximizing side, or at most as good for the minimizing side).
func tryNullMove(t *ThreadData, pos *rules.Position, depth, alpha, beta, ply, staticEval int, maximizing bool) bool {
	margin := staticEval - beta
	if !maximizing {
		margin = alpha - staticEval
	}
	if margin < -64 {
		return false
	}

	reduction := 2
	switch {
	case depth >= 6:
		reduction = 4
	case depth >= 4:
		reduction = 3
	}
	if margin > 200 {
		reduction++
	}
	if reduction > depth-1 {
		reduction = depth - 1
	}
	if reduction < 1 {
		return false
	}

	child := nullMove(pos)
	var score int
	if maximizing {
		score = t.Search(child, depth-1-reduction, beta-1, beta, ply+1, false, rules.Move{}, rules.Commander)
	} else {
		score = t.Search(child, depth-1-reduction, alpha, alpha+1, ply+1, false, rules.Move{}, rules.Commander)
	}

	cut := false
	if maximizing {
		cut = score >= beta
	} else {
		cut = score <= alpha
	}
	if !cut {
		return false
	}

	// Verification search at higher depths: null-move zugzwang escapes are
	// rarer on a board this size, but a cheap re-check at full depth keeps
	// the pruning honest once the reduction has gotten large.
	if depth >= 8 {
		var verify int
		if maximizing {
			verify = t.Search(pos, depth-1, beta-1, beta, ply, false, rules.Move{}, rules.Commander)
			return verify >= beta
		}
		verify = t.Search(pos, depth-1, alpha, alpha+1, ply, false, rules.Move{}, rules.Commander)
		return verify <= alpha
	}
	return true
}

// probcut tries a handful of good captures at a reduced depth against a
// widened beta, on the theory that a capture good enough to beat beta+200
// in a shallow search will very likely also beat the real beta at full
// depth — §4.11's "zero-window search at β+200, depth-4".
func probcut(t *ThreadData, pos *rules.Position, depth, beta, ply int, maximizing bool) (int, bool) {
	probBeta := beta + 200
	if !maximizing {
		probBeta = beta - 200
	}

	moves := rules.GenerateMoves(pos.Board, pos.SideToMove)
	for _, mv := range moves {
		if pos.Board.PieceAt(mv.DestCol, mv.DestRow) == nil {
			continue
		}
		if rules.SEE(pos.Board, mv.PieceID, mv.DestCol, mv.DestRow) < 0 {
			continue
		}
		child, ok := rules.Apply(pos, mv)
		if !ok {
			continue
		}
		mover := pos.Board.ByID(mv.PieceID)
		var score int
		if maximizing {
			score = t.Search(child, depth-4, probBeta-1, probBeta, ply+1, true, mv, mover.Kind)
			if score >= probBeta {
				return score, true
			}
		} else {
			score = t.Search(child, depth-4, probBeta, probBeta+1, ply+1, true, mv, mover.Kind)
			if score <= probBeta {
				return score, true
			}
		}
	}
	return 0, false
}
