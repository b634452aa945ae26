// Package apierr implements the tagged error-kind contract of §7: the
// public API never throws an unstructured error, it returns one of a
// fixed set of kinds plus a message drawn from a fixed vocabulary, so a
// caller across a language boundary can switch on Kind instead of
// parsing strings.
package apierr

// Kind enumerates the error categories the public API can surface.
type Kind int8

const (
	InvalidInput Kind = iota
	IllegalMove
	GameOver
	ResourceExhausted
	NoLegalMove
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid-input"
	case IllegalMove:
		return "illegal-move"
	case GameOver:
		return "game-over"
	case ResourceExhausted:
		return "resource-exhausted"
	case NoLegalMove:
		return "no-legal-move"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned across the public API: a Kind
// plus a message drawn from the fixed vocabulary of §7, never a free-form
// wrapped error (internal packages still use fmt.Errorf/%w; this type is
// the boundary where that collapses to a tagged value).
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Fixed-vocabulary constructors, one per §7 user-visible failure string.
func PieceNotFound() *Error      { return &Error{IllegalMove, "piece not found"} }
func WrongSide() *Error          { return &Error{IllegalMove, "not this piece's turn"} }
func Illegal() *Error            { return &Error{IllegalMove, "illegal move"} }
func AlreadyOver() *Error        { return &Error{GameOver, "game is already over"} }
func BotNoMove() *Error          { return &Error{NoLegalMove, "bot could not find a legal move"} }
func InvalidStateJSON() *Error   { return &Error{InvalidInput, "invalid state JSON"} }
func MissingOrInvalidMove() *Error { return &Error{InvalidInput, "missing/invalid move"} }

// Is reports whether err is an *Error of the given Kind — a small helper
// so callers can use errors.As/errors.Is-style checks without importing
// errors for a single comparison.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
