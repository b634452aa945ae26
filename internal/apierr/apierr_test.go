package apierr

import "testing"

func TestFixedVocabularyMessages(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{PieceNotFound(), "piece not found"},
		{WrongSide(), "not this piece's turn"},
		{Illegal(), "illegal move"},
		{AlreadyOver(), "game is already over"},
		{BotNoMove(), "bot could not find a legal move"},
		{InvalidStateJSON(), "invalid state JSON"},
		{MissingOrInvalidMove(), "missing/invalid move"},
	}
	for _, c := range cases {
		if c.err.Error() != c.want {
			t.Errorf("got %q, want %q", c.err.Error(), c.want)
		}
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := error(AlreadyOver())
	if !Is(err, GameOver) {
		t.Fatalf("expected Is to match GameOver")
	}
	if Is(err, InvalidInput) {
		t.Fatalf("did not expect Is to match InvalidInput")
	}
}
