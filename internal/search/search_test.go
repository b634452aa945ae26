package search

import (
	"testing"
	"time"

	"commanderchess/internal/corrhist"
	"commanderchess/internal/rules"
	"commanderchess/internal/tt"
)

func newSearchHarness() (*tt.Table, *corrhist.Banks) {
	return tt.NewTable(8), corrhist.NewBanks()
}

func TestRootFindsImmediateCommanderCapture(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	pos.Board = rules.NewBoard()
	red := pos.Board.AddPiece(rules.Red, rules.Commander, 4, 5, false)
	blue := pos.Board.AddPiece(rules.Blue, rules.Commander, 4, 6, false)
	pos.Board.AddPiece(rules.Red, rules.Headquarters, 4, 0, false)
	pos.Board.AddPiece(rules.Blue, rules.Headquarters, 4, 11, false)
	pos.SideToMove = rules.Red
	pos.Hash = rules.Hash(pos.Board, pos.SideToMove)
	pos.History = []uint64{pos.Hash}

	table, banks := newSearchHarness()
	res := Root(pos, table, banks, Config{MaxDepth: 3, HardDeadline: 2 * time.Second})

	if res.BestMove.PieceID != red.ID || res.BestMove.DestCol != blue.Col || res.BestMove.DestRow != blue.Row {
		t.Fatalf("expected red commander to capture blue commander face to face, got %+v", res.BestMove)
	}
}

func TestQuiescenceCountsRootNode(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	table, banks := newSearchHarness()
	td := NewThreadData(table, banks, pos.Mode, 0)
	score := td.quiescence(pos, -scoreInf, scoreInf, 0, 0)
	if score == 0 && td.Nodes == 0 {
		t.Fatalf("quiescence should have visited at least the root node")
	}
}

func TestFortressDeclinesOnRichPosition(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	if _, ok := Fortress(pos, 2); ok {
		t.Fatalf("fortress recognizer should decline on the full starting position")
	}
}

func TestBookMovePassesSafetyCheck(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	mv, ok := BookMove(pos)
	if !ok {
		t.Fatalf("expected a book move from the starting position")
	}
	if mv.PieceID == 0 {
		t.Fatalf("book move should name a real piece")
	}
}

func TestLMRReductionGrowsWithDepthAndMoveIndex(t *testing.T) {
	if lmr(2, 5) != 0 {
		t.Fatalf("lmr should stay zero below depth 3")
	}
	shallow := lmr(4, 3)
	deep := lmr(10, 12)
	if deep <= shallow {
		t.Fatalf("expected a deeper, later move to reduce more: shallow=%d deep=%d", shallow, deep)
	}
}
