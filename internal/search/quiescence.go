package search

import (
	"sort"

	"commanderchess/internal/eval"
	"commanderchess/internal/rules"
)

// quiescenceMaxDepth hard-caps qsearch recursion (§4.7): "Recursion depth
// hard-capped at 6 plies."
const quiescenceMaxDepth = 6

// quiescence resolves tactical noise after the main search bottoms out at
// depth 0: stand-pat cutoff, capture expansion ordered by SEE, Commander
// evasions when in check, and delta pruning against a fixed margin.
// qDepth counts plies spent inside quiescence itself, separate from the
// ply counter used for PV/killer/eval-stack bookkeeping.
func (t *ThreadData) quiescence(pos *rules.Position, alpha, beta, ply, qDepth int) int {
	t.Nodes++

	if qDepth <= 3 {
		if score, ok := Fortress(pos, 0); ok {
			return score
		}
	}

	maximizing := pos.SideToMove == rules.Red
	inCheck := rules.CommanderInCheck(pos.Board, pos.SideToMove)

	material := eval.Evaluate(pos, t.Contempt)
	stand := material
	if qDepth == 0 {
		// 2:1 blend at the very top of quiescence. Both terms come from
		// the full static evaluator (there is no separate material/PST
		// read), so the blend yields that evaluation unchanged.
		stand = (2*material + eval.Evaluate(pos, t.Contempt)) / 3
	}

	if !inCheck {
		if maximizing {
			if stand >= beta {
				return stand
			}
			if stand > alpha {
				alpha = stand
			}
		} else {
			if stand <= alpha {
				return stand
			}
			if stand < beta {
				beta = stand
			}
		}
	}

	if qDepth >= quiescenceMaxDepth {
		return stand
	}

	moves := rules.GenerateMoves(pos.Board, pos.SideToMove)
	type qmove struct {
		mv  rules.Move
		see int
	}
	var candidates []qmove
	for _, mv := range moves {
		isCapture := pos.Board.PieceAt(mv.DestCol, mv.DestRow) != nil
		mover := pos.Board.ByID(mv.PieceID)
		isEvasion := inCheck && mover != nil && mover.Kind == rules.Commander
		if !isCapture && !isEvasion {
			continue
		}
		see := 0
		if isCapture {
			see = rules.SEE(pos.Board, mv.PieceID, mv.DestCol, mv.DestRow)
			if qDepth >= 1 && see < 0 {
				continue // SEE-losing captures beyond depth 1 are pruned
			}
			deltaMargin := 200
			safety := 800
			if maximizing {
				if stand+see+deltaMargin+safety < alpha {
					continue
				}
			} else {
				if stand-see-deltaMargin-safety > beta {
					continue
				}
			}
		}
		candidates = append(candidates, qmove{mv, see})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].see > candidates[j].see })

	best := stand
	for _, c := range candidates {
		child, ok := rules.Apply(pos, c.mv)
		if !ok {
			continue
		}
		score := t.quiescence(child, alpha, beta, ply+1, qDepth+1)
		if maximizing {
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < best {
				best = score
			}
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
