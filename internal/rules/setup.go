package rules

import "unicode"

var letterToKind = map[rune]Kind{
	'c': Commander,
	'h': Headquarters,
	'i': Infantry,
	'm': Militia,
	't': Tank,
	'e': Engineer,
	'a': Artillery,
	'g': AntiAir,
	's': Missile,
	'f': AirForce,
	'n': Navy,
}

// initialBoardString lays out the 19-piece-per-side starting position.
// Sea is columns 0-2 only (a single coastline, not a mirrored pair), so
// both navies start there rather than flanking the board; headquarters
// flank the commander on the back rank (columns 4 and 6, per IsHQ), and
// artillery/anti-air/missile sit near the reef columns (5, 7) so they can
// cross the river unassisted.
const initialBoardString = `..TGHCHGT..
NN.E.S.E...
..A.I.I.A..
...M.F.M...
...........
...........
...........
...........
...m.f.m...
..a.i.i.a..
nn.e.s.e...
..tghchgt..`

// NewInitialBoard builds the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	rows := make([]string, 0, Rows)
	for _, line := range splitLines(initialBoardString) {
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != Rows {
		panic("initialBoardString row count mismatch")
	}
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != Cols {
			panic("initialBoardString col count mismatch")
		}
		for c, ch := range runes {
			if ch == '.' {
				continue
			}
			side := Blue
			base := ch
			if unicode.IsUpper(ch) {
				side = Red
				base = unicode.ToLower(ch)
			}
			kind, ok := letterToKind[base]
			if !ok {
				panic("unknown initial-setup letter: " + string(ch))
			}
			b.AddPiece(side, kind, c, r, false)
		}
	}
	return b
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
