package smp

import (
	"testing"
	"time"

	"commanderchess/internal/rules"
)

func TestDriverSearchReturnsLegalMove(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	d := NewDriver(8)
	res := d.Search(pos, Config{Workers: 3, MaxDepth: 2, HardDeadline: 3 * time.Second})
	if res.BestMove.PieceID == 0 {
		t.Fatalf("expected a best move from a 3-worker search")
	}
	legal := false
	for _, mv := range rules.GenerateMoves(pos.Board, pos.SideToMove) {
		if mv.PieceID == res.BestMove.PieceID && mv.DestCol == res.BestMove.DestCol && mv.DestRow == res.BestMove.DestRow {
			legal = true
			break
		}
	}
	if !legal {
		t.Fatalf("smp driver returned an illegal move: %+v", res.BestMove)
	}
}

func TestWorkersCapsAtEight(t *testing.T) {
	if got := Workers(64); got != 8 {
		t.Fatalf("expected Workers to cap at 8, got %d", got)
	}
}
