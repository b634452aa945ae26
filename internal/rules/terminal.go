package rules

// Result classifies a terminal position.
type Result int8

const (
	Ongoing Result = iota
	Win
	Draw
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// landKinds are the domain-elimination set for ModeLand: every kind that
// belongs to neither the sea nor the air domain, excluding Headquarters
// (immobile, never the point of a land-elimination victory) and Commander
// (its loss already ends the game unconditionally).
var landKinds = [...]Kind{Infantry, Militia, Tank, Engineer, Artillery, AntiAir, Missile}

// CheckTerminal evaluates pos, in which pos.SideToMove is now to move. It
// checks both sides' win conditions (a missing Commander, then the mode's
// domain elimination), then threefold repetition, then whether
// pos.SideToMove has no moves at all. ok is false while the game is still
// ongoing.
func CheckTerminal(pos *Position) (winner Side, result Result, ok bool) {
	b := pos.Board

	for _, side := range [2]Side{Red, Blue} {
		if b.Commander(side) == nil {
			return Opposite(side), Win, true
		}
	}

	switch pos.Mode {
	case ModeMarine:
		if w, isWin := domainElimination(b, Navy); isWin {
			return w, Win, true
		}
	case ModeAir:
		if w, isWin := domainElimination(b, AirForce); isWin {
			return w, Win, true
		}
	case ModeLand:
		for _, side := range [2]Side{Red, Blue} {
			if b.CountAlive(side, landKinds[:]...) == 0 {
				return Opposite(side), Win, true
			}
		}
	}

	if pos.RepetitionCount() >= 3 {
		return NoSide, Draw, true
	}

	if len(GenerateMoves(b, pos.SideToMove)) == 0 {
		return Opposite(pos.SideToMove), Win, true
	}

	return NoSide, Ongoing, false
}

// domainElimination reports a single-kind wipeout win: the side left with
// zero pieces of kind loses. Both sides start with at least one Navy and
// one Air Force, so reaching zero is always the result of combat, never
// an artifact of the starting position.
func domainElimination(b *Board, kind Kind) (winner Side, isWin bool) {
	for _, side := range [2]Side{Red, Blue} {
		if b.CountAlive(side, kind) == 0 {
			return Opposite(side), true
		}
	}
	return NoSide, false
}
