package commanderchess

import (
	"testing"

	"commanderchess/internal/apierr"
)

func TestNewGameStartsOngoing(t *testing.T) {
	g := NewGame(ModeFull, Easy)
	state := g.Serialize()
	if state.Terminal {
		t.Fatalf("a fresh game should not be terminal")
	}
	if len(state.LegalMoves) == 0 {
		t.Fatalf("a fresh game should have legal moves")
	}
	if len(state.Pieces) == 0 {
		t.Fatalf("a fresh game should have pieces")
	}
}

func TestApplyMoveRejectsUnknownPiece(t *testing.T) {
	g := NewGame(ModeFull, Easy)
	err := g.ApplyMove(Move{PieceID: 999999})
	if !apierr.Is(err, apierr.IllegalMove) {
		t.Fatalf("expected illegal-move for unknown piece id, got %v", err)
	}
}

func TestApplyMoveRejectsAfterGameOver(t *testing.T) {
	g := NewGame(ModeFull, Easy)
	g.Terminal = true
	err := g.ApplyMove(Move{})
	if !apierr.Is(err, apierr.GameOver) {
		t.Fatalf("expected game-over, got %v", err)
	}
}

func TestBotMovePlaysALegalMove(t *testing.T) {
	engine := NewEngine(Config{MaxDepth: 2, TimeLimitMs: 500})
	g := NewGameWithEngine(ModeFull, Easy, engine)
	mv, err := g.BotMove()
	if err != nil {
		t.Fatalf("bot move failed: %v", err)
	}
	if mv.PieceID == 0 {
		t.Fatalf("expected a real move")
	}
	if g.LastMove == nil || g.LastMove.PieceID != mv.PieceID {
		t.Fatalf("expected LastMove to reflect the played move")
	}
}

func TestPieceSpritesDefaultsEmpty(t *testing.T) {
	e := NewEngine(Config{})
	if sprites := e.PieceSprites(); len(sprites) != 0 {
		t.Fatalf("expected empty sprite map by default, got %v", sprites)
	}
	e.SetPieceSprites(map[string]string{"red-commander": "YmFzZTY0"})
	if got := e.PieceSprites()["red-commander"]; got != "YmFzZTY0" {
		t.Fatalf("expected registered sprite to round-trip, got %q", got)
	}
}
