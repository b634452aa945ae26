package search

import (
	"sort"

	"commanderchess/internal/rules"
)

// Move-ordering score ladder, §4.11.1.
const (
	scoreTTMove      = 3_000_000
	scorePrevPV      = 2_500_000
	scoreGoodCapture = 1_100_000
	scoreBadCapture  = 520_000
	scoreCounter     = 95_000
	scoreKiller0     = 90_000
	scoreKiller1     = 89_000
)

// scoreMoves fills each move's Score field per the ladder: TT best move,
// previous-iteration PV move (carried in via prevPV, a zero value when
// there isn't one), good/bad captures by SEE sign, the counter-move for
// the move that led here, the two killers for this ply, and quiets by
// butterfly + continuation history.
func scoreMoves(t *ThreadData, pos *rules.Position, moves []rules.Move, ttMove rules.Move, ply int, prevMove rules.Move, prevKind rules.Kind) {
	killers := t.killers[ply]
	counterSq := -1
	if prevMove.PieceID != 0 {
		counterSq = prevMove.DestRow*rules.Cols + prevMove.DestCol
	}
	counter := rules.Move{}
	if counterSq >= 0 {
		counter = t.counter[counterSq]
	}

	for i := range moves {
		mv := &moves[i]
		switch {
		case sameMove(*mv, ttMove):
			mv.Score = scoreTTMove
			continue
		case len(t.pv[0]) > 0 && ply == 0 && sameMove(*mv, t.pv[0][0]):
			mv.Score = scorePrevPV
			continue
		}

		target := pos.Board.PieceAt(mv.DestCol, mv.DestRow)
		if target != nil {
			see := rules.SEE(pos.Board, mv.PieceID, mv.DestCol, mv.DestRow)
			mvvLva := mvvLvaScore(pos.Board, mv.PieceID, target)
			if see >= 0 {
				mv.Score = scoreGoodCapture + 4*mvvLva + see
			} else {
				mv.Score = scoreBadCapture + 2*mvvLva + see
			}
			continue
		}

		if sameMove(*mv, counter) {
			mv.Score = scoreCounter
			continue
		}
		if sameMove(*mv, killers[0]) {
			mv.Score = scoreKiller0
			continue
		}
		if sameMove(*mv, killers[1]) {
			mv.Score = scoreKiller1
			continue
		}

		mover := pos.Board.ByID(mv.PieceID)
		sq := mv.DestRow*rules.Cols + mv.DestCol
		h := t.historyScore(pos.SideToMove, mover.Kind, sq)
		c := int32(0)
		if prevMove.PieceID != 0 {
			c = t.continuationScore(prevKind, prevMove.DestRow*rules.Cols+prevMove.DestCol, pos.SideToMove, mover.Kind, sq)
		}
		mv.Score = int(h) + int(c)
	}
}

func sameMove(a, b rules.Move) bool {
	return a.PieceID != 0 && a.PieceID == b.PieceID && a.DestCol == b.DestCol && a.DestRow == b.DestRow
}

// mvvLvaScore is the classic "most valuable victim, least valuable
// attacker" proxy used to break ties within a capture tier.
func mvvLvaScore(b *rules.Board, attackerID int, victim *rules.Piece) int {
	attacker := b.ByID(attackerID)
	if attacker == nil {
		return victim.Kind.Value()
	}
	return victim.Kind.Value()*16 - attacker.Kind.Value()
}

func orderMoves(moves []rules.Move) {
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].Score > moves[j].Score })
}
