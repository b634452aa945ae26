package search

import (
	"time"

	"commanderchess/internal/corrhist"
	"commanderchess/internal/rules"
	"commanderchess/internal/tt"
)

// Config configures a single root search, mirroring the teacher's
// SearchConfig (MaxDepth/TimeLimit) plus the extra knobs this engine's
// richer policy list needs.
type Config struct {
	MaxDepth     int
	HardDeadline time.Duration // 0 = unlimited
	Contempt     int
	UseBook      bool

	// WorkerSeed, when non-zero, deterministically shuffles the first
	// ShuffleCount root moves before the first iteration — the Lazy-SMP
	// desync strategy of §4.13, applied here rather than duplicated in
	// internal/smp so there is exactly one place root move order is
	// decided.
	WorkerSeed   uint64
	ShuffleCount int

	// StartDepth lets a Lazy-SMP worker begin its iterative deepening past
	// depth 1 (odd workers skip depth 1, per §4.13's desync policy).
	// Zero means start at depth 1, same as a lone searcher.
	StartDepth int
}

// Result reports what the root controller found, mirroring the teacher's
// SearchResult shape (BestMove/Score/Depth/Nodes/TimeUsed/PV).
type Result struct {
	BestMove rules.Move
	Score    int
	Depth    int
	Nodes    int64
	TimeUsed time.Duration
	PV       []rules.Move
}

// Root runs iterative deepening from depth 1 (or from cfg.StartDepth when
// that is larger) against pos, owning a fresh
// ThreadData backed by the shared table/corrHist. It is the single-
// threaded entry point; internal/smp.Driver fans this out across workers
// sharing the same table.
func Root(pos *rules.Position, table *tt.Table, corrHist *corrhist.Banks, cfg Config) Result {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 6
	}

	if cfg.UseBook {
		if mv, ok := BookMove(pos); ok {
			return Result{BestMove: mv, Depth: 0, PV: []rules.Move{mv}}
		}
	}

	start := time.Now()
	var deadline time.Time
	if cfg.HardDeadline > 0 {
		deadline = start.Add(cfg.HardDeadline)
	}

	t := NewThreadData(table, corrHist, pos.Mode, cfg.Contempt)
	t.Deadline = deadline

	moves := rules.GenerateMoves(pos.Board, pos.SideToMove)
	if len(moves) == 0 {
		return Result{}
	}
	if cfg.WorkerSeed != 0 {
		shuffleMoves(moves, cfg.WorkerSeed, cfg.ShuffleCount)
	}

	var best rules.Move
	bestScore := 0
	bestDepth := 0
	stableCount := 0
	softDeadline := deadline

	firstDepth := 1
	if cfg.StartDepth > 1 {
		firstDepth = cfg.StartDepth
	}
	for depth := firstDepth; depth <= cfg.MaxDepth; depth++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		rootScore, rootMove, ok := searchRoot(t, pos, moves, depth, bestScore)
		if !ok {
			break
		}
		changed := rootMove != best
		best = rootMove
		bestScore = rootScore
		bestDepth = depth

		if changed && depth >= 4 && !deadline.IsZero() {
			stableCount = 0
			extension := time.Until(deadline) / 4
			if newSoft := time.Now().Add(extension); newSoft.After(softDeadline) && newSoft.Before(deadline) {
				softDeadline = newSoft
			}
		} else {
			stableCount++
		}

		if stableCount >= 3 && depth >= 4 && !softDeadline.IsZero() && time.Now().After(softDeadline) {
			break
		}
	}

	return Result{
		BestMove: best,
		Score:    bestScore,
		Depth:    bestDepth,
		Nodes:    t.Nodes,
		TimeUsed: time.Since(start),
		PV:       append([]rules.Move(nil), t.pv[0]...),
	}
}

// searchRoot runs one iterative-deepening iteration: root move ordering
// (TT best, then last-iteration PV, then the standard ladder), an
// asymmetric aspiration window around prevScore, and per-root-move PVS.
func searchRoot(t *ThreadData, pos *rules.Position, moves []rules.Move, depth, prevScore int) (int, rules.Move, bool) {
	var ttMove rules.Move
	if entry, ok := t.TT.Probe(pos.Hash); ok {
		ttMove = rules.Move{PieceID: int(entry.PieceID), DestCol: int(entry.DestCol), DestRow: int(entry.DestRow)}
	}
	scoreMoves(t, pos, moves, ttMove, 0, rules.Move{}, rules.Commander)
	applyStylePenalty(pos, moves)
	orderMoves(moves)

	maximizing := pos.SideToMove == rules.Red
	alpha, beta := -scoreInf, scoreInf
	delta := 12
	if depth < 5 {
		alpha, beta = -scoreInf, scoreInf
	} else {
		alpha = prevScore - delta
		beta = prevScore + delta
	}

	for {
		score, move, ok := searchRootWindow(t, pos, moves, depth, alpha, beta, maximizing)
		if !ok {
			return 0, rules.Move{}, false
		}
		if score > alpha && score < beta {
			return score, move, true
		}
		if delta > 800 {
			alpha, beta = -scoreInf, scoreInf
			continue
		}
		delta = int(float64(delta)*1.44) + 5
		if maximizing {
			if score >= beta {
				beta = prevScore + delta
			} else {
				alpha = prevScore - delta
			}
		} else {
			if score <= alpha {
				alpha = prevScore - delta
			} else {
				beta = prevScore + delta
			}
		}
	}
}

func searchRootWindow(t *ThreadData, pos *rules.Position, moves []rules.Move, depth, alpha, beta int, maximizing bool) (int, rules.Move, bool) {
	best := -scoreInf
	if !maximizing {
		best = scoreInf
	}
	var bestMove rules.Move
	a, b := alpha, beta

	for i, mv := range moves {
		child, ok := rules.Apply(pos, mv)
		if !ok {
			continue
		}
		mover := pos.Board.ByID(mv.PieceID)

		var score int
		if i > 0 {
			if maximizing {
				score = t.Search(child, depth-1, a, narrow(a, b, maximizing), 1, true, mv, mover.Kind)
			} else {
				score = t.Search(child, depth-1, narrow(a, b, maximizing), b, 1, true, mv, mover.Kind)
			}
			if failedHigh(score, a, b, maximizing) {
				score = t.Search(child, depth-1, a, b, 1, true, mv, mover.Kind)
			}
		} else {
			score = t.Search(child, depth-1, a, b, 1, true, mv, mover.Kind)
		}

		if t.timeUp() {
			if bestMove.PieceID == 0 {
				return 0, rules.Move{}, false
			}
			break
		}

		if maximizing {
			if score > best {
				best, bestMove = score, mv
				t.pv[0] = append(append(t.pv[0][:0], mv), t.pv[1]...)
			}
			if score > a {
				a = score
			}
		} else {
			if score < best {
				best, bestMove = score, mv
				t.pv[0] = append(append(t.pv[0][:0], mv), t.pv[1]...)
			}
			if score < b {
				b = score
			}
		}
		if a >= b {
			break
		}
	}
	return best, bestMove, true
}

// shuffleMoves deterministically perturbs the first n moves using seed, a
// splitmix64-style Fisher-Yates — the same key-stream construction
// internal/rules/zobrist.go uses, reused here since it needs no extra
// dependency for a one-off deterministic shuffle.
func shuffleMoves(moves []rules.Move, seed uint64, n int) {
	if n > len(moves) {
		n = len(moves)
	}
	for i := n - 1; i > 0; i-- {
		seed += 0x9E3779B97F4A7C15
		z := seed
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		z ^= z >> 31
		j := int(z % uint64(i+1))
		moves[i], moves[j] = moves[j], moves[i]
	}
}

// applyStylePenalty nudges ordering in opening positions so the search
// doesn't spend its first, shallowest iterations looking at moves that
// hang an Air Force or Navy for nothing — a pure ordering hint, never a
// pruning decision. Moves of land pieces get no such penalty.
func applyStylePenalty(pos *rules.Position, moves []rules.Move) {
	if len(pos.History) > 8 {
		return
	}
	for i := range moves {
		mv := &moves[i]
		mover := pos.Board.ByID(mv.PieceID)
		if mover == nil {
			continue
		}
		switch mover.Kind {
		case rules.AirForce, rules.Navy:
			if rules.IsAttacked(pos.Board, rules.Opposite(pos.SideToMove), mv.DestCol, mv.DestRow) &&
				!rules.IsAttacked(pos.Board, pos.SideToMove, mv.DestCol, mv.DestRow) {
				mv.Score -= mover.Kind.Value()
			}
		}
	}
}
