// Package search implements the alpha-beta engine: the main negamax loop,
// quiescence, move ordering, pruning, and extensions, plus the iterative-
// deepening root controller and Lazy-SMP driver (internal/smp) that sit on
// top of it.
//
// Scores stay in Red's perspective throughout, the same single-perspective
// convention the static evaluator uses: the search branches explicitly on
// whose turn it is (maximize for Red, minimize for Blue) instead of the
// usual negamax sign flip, mirroring the teacher's own alphaBeta/
// alphaBetaRoot split in internal/engine/search.go.
package search

import (
	"time"

	"commanderchess/internal/corrhist"
	"commanderchess/internal/eval"
	"commanderchess/internal/rules"
	"commanderchess/internal/tt"
)

const (
	// scoreInf stands in for infinity in alpha-beta bounds, the same
	// round value the teacher uses (scoreInf).
	scoreInf = 1_000_000_000

	// mateBase and matePerPly set how a forced win is reported: a
	// terminal result scores mateBase plus matePerPly per ply of remaining
	// depth, so shorter forced wins sort ahead of longer ones.
	mateBase   = 40_000
	matePerPly = 100

	maxPly = 128
)

// winScore/lossScore return the mover-favoring terminal score at a given
// remaining depth, matching §4.11 policy 2 exactly: closer terminals (more
// remaining depth when discovered) score further from zero.
func winScore(depth int) int  { return mateBase + matePerPly*depth }
func lossScore(depth int) int { return -(mateBase + matePerPly*depth) }

// killerSlot holds the two most recent quiet moves that caused a beta cutoff
// at a given ply, tried early before the general quiet list.
type killerSlot [2]rules.Move

// historyKey identifies a (side, piece kind, destination) triple for the
// butterfly history table.
type historyKey struct {
	side rules.Side
	kind rules.Kind
	sq   int
}

// ThreadData is one search worker's private state: killer/history/
// continuation/counter-move tables, the eval stack used for the improving
// flag, and per-search bookkeeping (nodes, PV, stop signal). Lazy-SMP gives
// each worker its own ThreadData so workers never contend on anything but
// the shared *tt.Table.
type ThreadData struct {
	TT       *tt.Table
	CorrHist *corrhist.Banks
	Mode     rules.GameMode
	Contempt int

	killers     [maxPly]killerSlot
	history     map[historyKey]int32
	continuation map[[2]int]map[historyKey]int32 // [prevKind][prevSq] -> history
	counter     map[int]rules.Move               // prevDestSq -> counter move

	evalStack [maxPly]int
	pv        [maxPly][]rules.Move

	Nodes int64

	Deadline time.Time
	Stop     *bool
}

// NewThreadData allocates a ThreadData sharing tt and corrHist with the
// rest of the pool but owning its own ordering tables.
func NewThreadData(table *tt.Table, corrHist *corrhist.Banks, mode rules.GameMode, contempt int) *ThreadData {
	return &ThreadData{
		TT:           table,
		CorrHist:     corrHist,
		Mode:         mode,
		Contempt:     contempt,
		history:      make(map[historyKey]int32, 256),
		continuation: make(map[[2]int]map[historyKey]int32, 64),
		counter:      make(map[int]rules.Move, 64),
	}
}

// timeUp reports whether the worker should abandon search immediately.
func (t *ThreadData) timeUp() bool {
	if t.Stop != nil && *t.Stop {
		return true
	}
	return !t.Deadline.IsZero() && time.Now().After(t.Deadline)
}

func contSlot(prevKind rules.Kind, prevSq int) [2]int { return [2]int{int(prevKind), prevSq} }

func (t *ThreadData) historyScore(side rules.Side, kind rules.Kind, sq int) int32 {
	return t.history[historyKey{side, kind, sq}]
}

func (t *ThreadData) continuationScore(prevKind rules.Kind, prevSq int, side rules.Side, kind rules.Kind, sq int) int32 {
	m := t.continuation[contSlot(prevKind, prevSq)]
	if m == nil {
		return 0
	}
	return m[historyKey{side, kind, sq}]
}

// updateHistory applies the gravity update of §4.11 to the butterfly table
// for the move that caused the cutoff, and the symmetric malus to every
// quiet move that was tried and failed before it.
func (t *ThreadData) updateHistory(side rules.Side, kind rules.Kind, sq int, bonus int32) {
	k := historyKey{side, kind, sq}
	cur := t.history[k]
	t.history[k] = gravity(cur, bonus)
}

func (t *ThreadData) updateContinuation(prevKind rules.Kind, prevSq int, side rules.Side, kind rules.Kind, sq int, bonus int32) {
	slot := contSlot(prevKind, prevSq)
	m := t.continuation[slot]
	if m == nil {
		m = make(map[historyKey]int32, 16)
		t.continuation[slot] = m
	}
	k := historyKey{side, kind, sq}
	m[k] = gravity(m[k], bonus)
}

// gravity is the damped history update of §4.11: "bonus - value*|bonus|/32000".
func gravity(value, bonus int32) int32 {
	next := value + bonus - value*absInt32(bonus)/32000
	if next > 32000 {
		next = 32000
	}
	if next < -32000 {
		next = -32000
	}
	return next
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func (t *ThreadData) setKiller(ply int, mv rules.Move) {
	if ply >= maxPly {
		return
	}
	k := &t.killers[ply]
	if k[0].PieceID == mv.PieceID && k[0].DestCol == mv.DestCol && k[0].DestRow == mv.DestRow {
		return
	}
	k[1] = k[0]
	k[0] = mv
}

// Search runs the main alpha-beta recursion at ply from pos, with alpha/beta
// expressed in Red's perspective throughout. mayNull gates whether a
// null-move try is permitted at this node (disabled immediately below a
// null move, to avoid double null moves). prevMove is the move that led to
// pos, used for continuation/counter-move lookups.
func (t *ThreadData) Search(pos *rules.Position, depth, alpha, beta, ply int, mayNull bool, prevMove rules.Move, prevKind rules.Kind) int {
	t.Nodes++
	if ply < maxPly {
		t.pv[ply] = t.pv[ply][:0]
	}

	// 1. Repetition short-circuit.
	if pos.RepetitionCount() >= 3 {
		return 0
	}

	// 2. Terminal.
	if _, result, ok := rules.CheckTerminal(pos); ok {
		switch result {
		case rules.Draw:
			return 0
		case rules.Win:
			// CheckTerminal reports the winner; the side whose turn it now
			// is lost (stalemate/domain-elimination/commander-loss all
			// resolve this way), so this node is a loss for SideToMove.
			if pos.SideToMove == rules.Red {
				return lossScore(depth)
			}
			return winScore(depth)
		}
	}

	// 3. Special-outcome recognizer at shallow residual depth.
	if depth <= 3 {
		if score, ok := Fortress(pos, depth); ok {
			return score
		}
	}

	// 4. Depth 0 -> quiescence.
	if depth <= 0 {
		return t.quiescence(pos, alpha, beta, ply, 0)
	}

	if t.timeUp() {
		return eval.Evaluate(pos, t.Contempt)
	}

	pvNode := beta-alpha > 1
	key := pos.Hash

	// 5. TT probe.
	var ttMove rules.Move
	var ttHit bool
	if entry, ok := t.TT.Probe(key); ok {
		ttHit = true
		ttMove = rules.Move{PieceID: int(entry.PieceID), DestCol: int(entry.DestCol), DestRow: int(entry.DestRow)}
		if int(entry.Depth) >= depth && !pvNode {
			score := int(entry.Score)
			switch entry.Bound {
			case tt.BoundExact:
				return score
			case tt.BoundLower:
				if score >= beta {
					return score
				}
			case tt.BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	// 6. Internal iterative reduction.
	searchDepth := depth
	if !ttHit && !pvNode && depth >= 6 {
		searchDepth = depth - 1
	}

	// 7. Corrected static eval.
	raw := eval.Evaluate(pos, t.Contempt)
	materialKey, terrainKey := signatureKeys(pos)
	staticEval := t.CorrHist.Correct(int(pos.SideToMove), key, materialKey, terrainKey, raw)
	if ply < maxPly {
		t.evalStack[ply] = staticEval
	}

	// 8. Improving flag.
	improving := ply < 2 || staticEval > t.evalStack[ply-2]

	inCheck := rules.CommanderInCheck(pos.Board, pos.SideToMove)
	enemyInCheck := rules.CommanderInCheck(pos.Board, rules.Opposite(pos.SideToMove))
	pruningOK := !inCheck && !enemyInCheck // policy 9: disabled when either commander is attacked

	maximizing := pos.SideToMove == rules.Red

	if pruningOK && !pvNode {
		// Reverse futility pruning.
		if searchDepth <= 4 {
			margin := 80
			if improving {
				margin += 100 * searchDepth
			} else {
				margin += 160 * searchDepth
			}
			if maximizing {
				if staticEval-margin >= beta {
					return staticEval - margin
				}
			} else {
				if staticEval+margin <= alpha {
					return staticEval + margin
				}
			}
		}

		// Razoring.
		if searchDepth <= 3 {
			margin := 200 + 180*(searchDepth-1)
			if maximizing && staticEval+margin <= alpha {
				return t.quiescence(pos, alpha, beta, ply, 0)
			}
			if !maximizing && staticEval-margin >= beta {
				return t.quiescence(pos, alpha, beta, ply, 0)
			}
		}

		// Null-move pruning.
		if mayNull && searchDepth >= 3 && !isZugzwangish(pos.Board, pos.SideToMove) {
			if tryNullMove(t, pos, searchDepth, alpha, beta, ply, staticEval, maximizing) {
				return beta
			}
		}

		// Probcut.
		if searchDepth >= 5 {
			if score, ok := probcut(t, pos, searchDepth, beta, ply, maximizing); ok {
				return score
			}
		}
	}

	moves := rules.GenerateMoves(pos.Board, pos.SideToMove)
	if len(moves) == 0 {
		// No legal move. CheckTerminal above already returns for a side to
		// move with no moves, so this fallback scores the same case the
		// same way: a loss for the side to move, per §4.11 policy 2's sign.
		if maximizing {
			return lossScore(depth)
		}
		return winScore(depth)
	}

	scoreMoves(t, pos, moves, ttMove, ply, prevMove, prevKind)
	orderMoves(moves)

	bestScore := scoreInf
	if maximizing {
		bestScore = -scoreInf
	}
	var bestMove rules.Move
	var quietsSearched []rules.Move
	movesSearched := 0

	lmpThreshold := 3 + searchDepth*searchDepth
	if improving {
		lmpThreshold = 5 + searchDepth*searchDepth
	}

	for i := range moves {
		mv := moves[i]
		mover := pos.Board.ByID(mv.PieceID)
		isCapture := pos.Board.PieceAt(mv.DestCol, mv.DestRow) != nil
		isQuiet := !isCapture

		if pruningOK && !pvNode && movesSearched > 0 {
			if isQuiet {
				quietIndex := movesSearched
				if quietIndex > lmpThreshold && searchDepth <= 4 {
					continue
				}
				if searchDepth <= 6 && quietIndex > 1 {
					h := t.historyScore(pos.SideToMove, mover.Kind, mv.DestRow*rules.Cols+mv.DestCol)
					if int(h) < -55*searchDepth*searchDepth {
						continue
					}
				}
				if searchDepth <= 3 {
					margin := staticEval
					if maximizing {
						margin += 100 + 100*searchDepth
						if margin <= alpha {
							continue
						}
					} else {
						margin -= 100 + 100*searchDepth
						if margin >= beta {
							continue
						}
					}
				}
			} else if searchDepth <= 4 {
				seeVal := rules.SEE(pos.Board, mv.PieceID, mv.DestCol, mv.DestRow)
				if seeVal < -80*searchDepth {
					continue
				}
			}
		}

		child, ok := rules.Apply(pos, mv)
		if !ok {
			continue
		}

		extension := t.extend(pos, child, mv, searchDepth, ply, ttMove, ttHit)

		newDepth := searchDepth - 1 + extension
		var score int
		reduction := 0
		if searchDepth >= 3 && movesSearched > 0 && isQuiet {
			reduction = lmr(searchDepth, movesSearched+1)
			if !pvNode {
				reduction++
			}
			if !improving {
				reduction++
			}
			h := t.historyScore(pos.SideToMove, mover.Kind, mv.DestRow*rules.Cols+mv.DestCol)
			reduction -= clampInt(int(h)/6000, -2, 2)
			if reduction < 0 {
				reduction = 0
			}
			if reduction > newDepth-1 {
				reduction = newDepth - 1
			}
		}

		searchedFull := false
		if reduction > 0 {
			if maximizing {
				score = t.Search(child, newDepth-reduction, alpha, narrow(alpha, beta, maximizing), ply+1, true, mv, mover.Kind)
			} else {
				score = t.Search(child, newDepth-reduction, narrow(alpha, beta, maximizing), beta, ply+1, true, mv, mover.Kind)
			}
			if failedHigh(score, alpha, beta, maximizing) {
				score = t.Search(child, newDepth, alpha, beta, ply+1, true, mv, mover.Kind)
				searchedFull = true
			}
		}
		if !searchedFull && movesSearched > 0 && pvNode {
			if maximizing {
				score = t.Search(child, newDepth, alpha, narrow(alpha, beta, maximizing), ply+1, true, mv, mover.Kind)
			} else {
				score = t.Search(child, newDepth, narrow(alpha, beta, maximizing), beta, ply+1, true, mv, mover.Kind)
			}
			if failedHigh(score, alpha, beta, maximizing) {
				score = t.Search(child, newDepth, alpha, beta, ply+1, true, mv, mover.Kind)
			}
		} else if !searchedFull {
			score = t.Search(child, newDepth, alpha, beta, ply+1, true, mv, mover.Kind)
		}

		movesSearched++
		if isQuiet {
			quietsSearched = append(quietsSearched, mv)
		}

		improvedBound := false
		if maximizing {
			if score > bestScore {
				bestScore = score
				bestMove = mv
			}
			if score > alpha {
				alpha = score
				improvedBound = true
			}
		} else {
			if score < bestScore {
				bestScore = score
				bestMove = mv
			}
			if score < beta {
				beta = score
				improvedBound = true
			}
		}
		if improvedBound && ply < maxPly-1 {
			t.pv[ply] = append(t.pv[ply][:0], mv)
			t.pv[ply] = append(t.pv[ply], t.pv[ply+1]...)
		}
		if alpha >= beta {
			if isQuiet {
				sq := mv.DestRow*rules.Cols + mv.DestCol
				t.setKiller(ply, mv)
				t.updateHistory(pos.SideToMove, mover.Kind, sq, bonusFor(searchDepth))
				if prevMove.PieceID != 0 {
					t.updateContinuation(prevKind, prevMove.DestRow*rules.Cols+prevMove.DestCol, pos.SideToMove, mover.Kind, sq, bonusFor(searchDepth))
				}
				t.counter[prevMove.DestRow*rules.Cols+prevMove.DestCol] = mv
				for _, q := range quietsSearched[:len(quietsSearched)-1] {
					qm := pos.Board.ByID(q.PieceID)
					if qm == nil {
						continue
					}
					t.updateHistory(pos.SideToMove, qm.Kind, q.DestRow*rules.Cols+q.DestCol, -bonusFor(searchDepth))
				}
			}
			break
		}
	}

	bound := tt.BoundExact
	if maximizing {
		if bestScore >= beta {
			bound = tt.BoundLower
		} else if bestScore <= alpha {
			bound = tt.BoundUpper
		}
	} else {
		if bestScore <= alpha {
			bound = tt.BoundLower
		} else if bestScore >= beta {
			bound = tt.BoundUpper
		}
	}
	t.TT.Store(key, int8(depth), int16(clampScore(bestScore)), bound, bestMove.PieceID, bestMove.DestCol, bestMove.DestRow)

	if bound == tt.BoundExact && depth >= 1 {
		t.CorrHist.Update(int(pos.SideToMove), key, materialKey, terrainKey, staticEval, bestScore, depth)
	}

	return bestScore
}

func bonusFor(depth int) int32 { return int32(depth * depth) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampScore(s int) int {
	if s > 32000 {
		return 32000
	}
	if s < -32000 {
		return -32000
	}
	return s
}

// narrow collapses the window to a one-point zero-window probe on the side
// the mover stands to gain from, the PVS shape used throughout.
func narrow(alpha, beta int, maximizing bool) int {
	if maximizing {
		return alpha + 1
	}
	return beta - 1
}

func failedHigh(score, alpha, beta int, maximizing bool) bool {
	if maximizing {
		return score > alpha && score < beta
	}
	return score < beta && score > alpha
}

// lmr implements the log-table reduction formula of §4.11.1:
// round(0.5 + ln(d)*ln(m)/2).
func lmr(depth, moveIndex int) int {
	if depth < 3 || moveIndex < 2 {
		return 0
	}
	return int(0.5 + lnTable(depth)*lnTable(moveIndex)/2)
}

var lnCache [64]float64

func lnTable(n int) float64 {
	if n <= 0 {
		return 0
	}
	if n < len(lnCache) {
		if lnCache[n] == 0 {
			lnCache[n] = naturalLog(float64(n))
		}
		return lnCache[n]
	}
	return naturalLog(float64(n))
}

// naturalLog avoids importing math for a single call site's worth of use;
// a short Newton-style series is plenty accurate for a reduction table.
func naturalLog(x float64) float64 {
	if x <= 0 {
		return 0
	}
	// ln(x) via ln(x) = 2*atanh((x-1)/(x+1)), converges fast for x>0.
	y := (x - 1) / (x + 1)
	y2 := y * y
	term := y
	sum := 0.0
	for n := 0; n < 12; n++ {
		sum += term / float64(2*n+1)
		term *= y2
	}
	return 2 * sum
}

// isZugzwangish reports the pawn-like-material-only condition of §4.11's
// null-move guard: a side with nothing but Infantry/Militia left (no piece
// that benefits from tempo) is the one case where passing can itself be
// the losing move.
func isZugzwangish(b *rules.Board, side rules.Side) bool {
	for _, p := range b.Pieces {
		if p.Side != side {
			continue
		}
		switch p.Kind {
		case rules.Infantry, rules.Militia, rules.Commander, rules.Headquarters:
			continue
		default:
			return false
		}
	}
	return true
}

func signatureKeys(pos *rules.Position) (materialKey, terrainKey uint64) {
	var material int64
	var terrain uint64
	for _, p := range pos.Board.Pieces {
		v := int64(p.Kind.Value())
		if p.Side == rules.Blue {
			v = -v
		}
		material += v
		if rules.IsSea(p.Col) || rules.IsNavigable(p.Col, p.Row) {
			terrain ^= 1 << uint((p.Row*rules.Cols+p.Col)%63)
		}
		if p.Kind == rules.Commander {
			terrain ^= uint64(p.Row*rules.Cols+p.Col) << 7
		}
		if p.CarrierID != 0 {
			terrain ^= 0x9E3779B1
		}
	}
	return uint64(material/10) * 0x2545F4914F6CDD1D, terrain
}
