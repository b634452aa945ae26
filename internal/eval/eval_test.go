package eval

import (
	"testing"

	"commanderchess/internal/rules"
)

func TestEvaluateInitialPositionIsRoughlySymmetric(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	score := Evaluate(pos, 0)
	if score < -TempoBonus-1 || score > TempoBonus+64 {
		t.Fatalf("initial position should be close to balanced, got %d", score)
	}
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	for _, p := range pos.Board.Pieces {
		if p.Side == rules.Blue && p.Kind == rules.Navy {
			pos.Board.RemoveSubtree(p.ID)
			break
		}
	}
	score := Evaluate(pos, 0)
	if score <= 0 {
		t.Fatalf("red should be favored after blue loses a navy, got %d", score)
	}
}

func TestBatchEvaluateMatchesSingleEvaluate(t *testing.T) {
	pos := rules.NewInitialPosition(rules.ModeFull)
	got := BatchEvaluate(BackendWebGPU, []*rules.Position{pos, pos}, 5)
	want := Evaluate(pos, 5)
	for _, g := range got {
		if g != want {
			t.Fatalf("batch evaluate mismatch: got %d want %d", g, want)
		}
	}
}
