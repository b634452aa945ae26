package rules

import "testing"

func TestInitialPositionPieceCount(t *testing.T) {
	pos := NewInitialPosition(ModeFull)
	if len(pos.Board.Pieces) != 38 {
		t.Fatalf("want 38 pieces, got %d", len(pos.Board.Pieces))
	}
	if pos.SideToMove != Red {
		t.Fatalf("want red to move first, got %v", pos.SideToMove)
	}
	if _, _, over := CheckTerminal(pos); over {
		t.Fatalf("initial position must not be terminal")
	}
	h1 := Hash(pos.Board, pos.SideToMove)
	h2 := Hash(pos.Board.Clone(), pos.SideToMove)
	if h1 != h2 {
		t.Fatalf("hash is not deterministic across clones: %d vs %d", h1, h2)
	}
	if len(GenerateMoves(pos.Board, Red)) == 0 {
		t.Fatalf("red must have at least one legal move from the initial position")
	}
}

func TestInitialPositionEveryMoveAppliesAndPerftTwoIsPositive(t *testing.T) {
	pos := NewInitialPosition(ModeFull)
	redMoves := GenerateMoves(pos.Board, Red)
	var total int
	for _, mv := range redMoves {
		next, ok := Apply(pos, mv)
		if !ok {
			t.Fatalf("apply failed for pseudo-legal move %+v", mv)
		}
		total += len(GenerateMoves(next.Board, Blue))
	}
	if total == 0 {
		t.Fatalf("perft(2) product must be positive")
	}
	checkInvariants(pos.Board)
}

func newScratchPosition(mode GameMode) *Position {
	return &Position{Board: NewBoard(), SideToMove: Red, Mode: mode}
}

// E2: Navy stay-and-fire never relocates the Navy.
func TestNavyStayAndFire(t *testing.T) {
	pos := newScratchPosition(ModeFull)
	pos.Board.AddPiece(Red, Commander, 0, 0, false)
	pos.Board.AddPiece(Blue, Commander, 10, 11, false)
	navy := pos.Board.AddPiece(Red, Navy, 1, 1, false)
	inf := pos.Board.AddPiece(Blue, Infantry, 4, 1, false)

	next, ok := Apply(pos, Move{PieceID: navy.ID, DestCol: 4, DestRow: 1})
	if !ok {
		t.Fatalf("navy fire move rejected")
	}
	if next.Board.ByID(inf.ID) != nil {
		t.Fatalf("infantry should have been destroyed")
	}
	movedNavy := next.Board.ByID(navy.ID)
	if movedNavy.Col != 1 || movedNavy.Row != 1 {
		t.Fatalf("navy should stay at (1,1), found at (%d,%d)", movedNavy.Col, movedNavy.Row)
	}
	if next.SideToMove != Blue {
		t.Fatalf("side to move should be blue after red's move")
	}
}

// E3: an Air Force that strikes within an enemy Anti-Air ring is destroyed
// along with its target.
func TestAirForceKamikaze(t *testing.T) {
	pos := newScratchPosition(ModeFull)
	pos.Board.AddPiece(Red, Commander, 0, 0, false)
	pos.Board.AddPiece(Blue, Commander, 10, 11, false)
	af := pos.Board.AddPiece(Red, AirForce, 3, 3, false)
	pos.Board.AddPiece(Blue, AntiAir, 5, 3, false)
	inf := pos.Board.AddPiece(Blue, Infantry, 5, 4, false)

	next, ok := Apply(pos, Move{PieceID: af.ID, DestCol: 5, DestRow: 4})
	if !ok {
		t.Fatalf("air force bombing move rejected")
	}
	if next.Board.ByID(inf.ID) != nil {
		t.Fatalf("infantry should have been destroyed")
	}
	if next.Board.ByID(af.ID) != nil {
		t.Fatalf("air force should have been shot down by anti-air")
	}
}

// E4: away from any Anti-Air ring, the Air Force survives a bombing run
// and returns to its starting square.
func TestAirForceBombardmentReturn(t *testing.T) {
	pos := newScratchPosition(ModeFull)
	pos.Board.AddPiece(Red, Commander, 0, 0, false)
	pos.Board.AddPiece(Blue, Commander, 10, 11, false)
	af := pos.Board.AddPiece(Red, AirForce, 3, 3, false)
	inf := pos.Board.AddPiece(Blue, Infantry, 5, 3, false)
	pos.Board.AddPiece(Blue, Artillery, 7, 3, false)

	next, ok := Apply(pos, Move{PieceID: af.ID, DestCol: 5, DestRow: 3})
	if !ok {
		t.Fatalf("air force bombing move rejected")
	}
	if next.Board.ByID(inf.ID) != nil {
		t.Fatalf("infantry should have been destroyed")
	}
	survivor := next.Board.ByID(af.ID)
	if survivor == nil {
		t.Fatalf("air force should survive away from anti-air coverage")
	}
	if survivor.Col != 3 || survivor.Row != 3 {
		t.Fatalf("air force should return to (3,3), found at (%d,%d)", survivor.Col, survivor.Row)
	}
}

// E5: the same (position, side-to-move) recurring three times is a draw.
func TestThreefoldRepetitionIsDraw(t *testing.T) {
	pos := newScratchPosition(ModeFull)
	rc := pos.Board.AddPiece(Red, Commander, 4, 0, false)
	bc := pos.Board.AddPiece(Blue, Commander, 6, 11, false)
	pos.Hash = Hash(pos.Board, pos.SideToMove)
	pos.History = append(pos.History, pos.Hash)

	dance := []struct {
		piece    *Piece
		col, row int
	}{
		{rc, 3, 0}, {bc, 7, 11},
		{rc, 4, 0}, {bc, 6, 11},
		{rc, 3, 0}, {bc, 7, 11},
		{rc, 4, 0}, {bc, 6, 11},
		{rc, 3, 0}, {bc, 7, 11},
		{rc, 4, 0}, {bc, 6, 11},
	}
	for _, step := range dance {
		var ok bool
		pos, ok = Apply(pos, Move{PieceID: step.piece.ID, DestCol: step.col, DestRow: step.row})
		if !ok {
			t.Fatalf("dance move rejected for piece %d -> (%d,%d)", step.piece.ID, step.col, step.row)
		}
	}
	if pos.RepetitionCount() < 3 {
		t.Fatalf("want at least 3 occurrences of the final position, got %d", pos.RepetitionCount())
	}
	_, result, over := CheckTerminal(pos)
	if !over || result != Draw {
		t.Fatalf("want a draw by repetition, got result=%v over=%v", result, over)
	}
}

// E6: in marine mode, destroying both of a side's navies ends the game.
func TestMarineModeTermination(t *testing.T) {
	pos := newScratchPosition(ModeMarine)
	pos.Board.AddPiece(Red, Commander, 0, 0, false)
	bc := pos.Board.AddPiece(Blue, Commander, 10, 11, false)
	n1 := pos.Board.AddPiece(Blue, Navy, 1, 5, false)
	n2 := pos.Board.AddPiece(Blue, Navy, 1, 6, false)
	pos.Board.AddPiece(Red, Navy, 0, 3, false)
	pos.Board.AddPiece(Red, Artillery, 4, 5, false)
	pos.Board.AddPiece(Red, Artillery, 4, 6, false)
	_ = bc

	pos.Board.RemoveSubtree(n1.ID)
	if _, _, over := CheckTerminal(pos); over {
		t.Fatalf("one surviving navy must not end a marine-mode game")
	}
	pos.Board.RemoveSubtree(n2.ID)
	winner, result, over := CheckTerminal(pos)
	if !over || result != Win || winner != Red {
		t.Fatalf("want red win by naval destruction, got winner=%v result=%v over=%v", winner, result, over)
	}
}
