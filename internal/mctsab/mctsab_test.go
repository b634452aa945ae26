package mctsab

import (
	"testing"
	"time"

	"commanderchess/internal/corrhist"
	"commanderchess/internal/eval"
	"commanderchess/internal/rules"
	"commanderchess/internal/tt"
)

func TestSearchReturnsLegalMove(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	table := tt.NewTable(8)
	banks := corrhist.NewBanks()

	res := Search(pos, table, banks, Config{
		Playouts:     64,
		HardDeadline: 2 * time.Second,
		Workers:      2,
		ABDepth:      2,
		Backend:      eval.BackendCPU,
	})

	if res.BestMove.PieceID == 0 {
		t.Fatalf("expected a best move")
	}
	legal := false
	for _, mv := range rules.GenerateMoves(pos.Board, pos.SideToMove) {
		if mv.PieceID == res.BestMove.PieceID && mv.DestCol == res.BestMove.DestCol && mv.DestRow == res.BestMove.DestRow {
			legal = true
			break
		}
	}
	if !legal {
		t.Fatalf("mctsab returned an illegal move: %+v", res.BestMove)
	}
}

func TestSearchReturnsMoveOnSparseBoard(t *testing.T) {
	b := rules.NewBoard()
	b.AddPiece(rules.Red, rules.Commander, 5, 6, false)
	b.AddPiece(rules.Blue, rules.Commander, 5, 0, false)
	b.AddPiece(rules.Red, rules.Infantry, 4, 6, false)
	pos := &rules.Position{Board: b, SideToMove: rules.Red, Mode: rules.ModeFull}
	pos.Hash = rules.Hash(b, pos.SideToMove)

	table := tt.NewTable(8)
	banks := corrhist.NewBanks()
	res := Search(pos, table, banks, Config{Playouts: 16, Workers: 8, ABDepth: 1, HardDeadline: time.Second})
	if res.BestMove.PieceID == 0 {
		t.Fatalf("expected a move on a three-piece board")
	}
}

func TestSoftmaxPriorsSumToOne(t *testing.T) {
	priors := softmaxPriors([]float64{10, 5, -3, 0})
	sum := 0.0
	for _, p := range priors {
		if p < 0 {
			t.Fatalf("prior must not be negative: %v", p)
		}
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("priors should sum to ~1, got %v", sum)
	}
}
