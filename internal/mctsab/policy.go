package mctsab

import (
	"math"

	"commanderchess/internal/rules"
)

// softmaxTau is the policy-prior softmax temperature: policyScore
// differences are divided by 25 before exponentiation, so two moves whose
// scores differ by 25 get priors that differ by a factor of e.
const softmaxTau = 25

// policyScore is a hand-crafted stand-in for the teacher's neural policy
// head (internal/mcts/node.go's PriorMap came from an nn.Evaluate call):
// MVV-LVA plus SEE for captures, central-control and forward-advance for
// every move, and a history nudge so a move that has been good elsewhere in
// the game gets a head start here too.
func policyScore(pos *rules.Position, mv rules.Move, history map[historyKey]int32) float64 {
	mover := pos.Board.ByID(mv.PieceID)
	if mover == nil {
		return 0
	}

	score := 0.0
	if target := pos.Board.PieceAt(mv.DestCol, mv.DestRow); target != nil {
		see := rules.SEE(pos.Board, mv.PieceID, mv.DestCol, mv.DestRow)
		score += float64(target.Kind.Value())*1.6 - float64(mover.Kind.Value())*0.4 + float64(see)*0.5
	}

	score += centralControl(mv.DestCol, mv.DestRow)
	score += forwardAdvance(mover.Side, mover.Row, mv.DestRow)

	if h, ok := history[historyKey{mover.Side, mover.Kind, mv.DestRow*rules.Cols + mv.DestCol}]; ok {
		score += float64(h) * 0.05
	}

	if threatensCommander(pos.Board, mover, mv) {
		score += 60
	}

	return score
}

// historyKey mirrors internal/search's butterfly-history key shape; kept
// local rather than exported from internal/search so mctsab doesn't need
// a ThreadData to carry a move-ordering history table around — the
// policy prior only wants a coarse nudge, not search's full ladder.
type historyKey struct {
	side rules.Side
	kind rules.Kind
	sq   int
}

func centralControl(col, row int) float64 {
	dc := float64(col) - float64(rules.Cols-1)/2
	dr := float64(row) - float64(rules.Rows-1)/2
	dist := math.Hypot(dc, dr)
	return 8 - dist
}

func forwardAdvance(side rules.Side, fromRow, toRow int) float64 {
	delta := toRow - fromRow
	if side == rules.Blue {
		delta = -delta
	}
	return float64(delta) * 2
}

func threatensCommander(b *rules.Board, mover *rules.Piece, mv rules.Move) bool {
	enemy := rules.Opposite(mover.Side)
	commander := b.Commander(enemy)
	if commander == nil {
		return false
	}
	dc := abs(mv.DestCol - commander.Col)
	dr := abs(mv.DestRow - commander.Row)
	return dc <= 1 && dr <= 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// softmaxPriors turns raw policyScore values into a probability
// distribution over moves, the prior weight PUCT selection reads at each
// child (Node.Prior).
func softmaxPriors(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	sum := 0.0
	out := make([]float64, len(scores))
	for i, s := range scores {
		w := math.Exp((s - max) / softmaxTau)
		out[i] = w
		sum += w
	}
	if sum == 0 {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
