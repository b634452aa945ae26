package rules

// Attackers returns every uncarried piece of side that can reach (col,row)
// on its next move — the move-generation-level notion of "attacks", used
// by SEE and by the evaluator's attack cache. It is not filtered for
// legality against the mover's own Commander safety, same as GenerateMoves.
func Attackers(b *Board, side Side, col, row int) []*Piece {
	var out []*Piece
	var dest []Square
	for _, p := range b.Pieces {
		if p.Side != side || p.CarrierID != 0 {
			continue
		}
		dest = dest[:0]
		for _, sq := range Moves(b, p) {
			dest = append(dest, sq)
		}
		for _, sq := range dest {
			if sq.Col == col && sq.Row == row {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// IsAttacked reports whether any of side's pieces attacks (col,row).
func IsAttacked(b *Board, side Side, col, row int) bool {
	for _, p := range b.Pieces {
		if p.Side != side || p.CarrierID != 0 {
			continue
		}
		for _, sq := range Moves(b, p) {
			if sq.Col == col && sq.Row == row {
				return true
			}
		}
	}
	return false
}

// CommanderInCheck reports whether side's Commander square is attacked by
// the opposing side. A missing Commander is not "in check" — the game is
// already decided by then.
func CommanderInCheck(b *Board, side Side) bool {
	c := b.Commander(side)
	if c == nil {
		return false
	}
	return IsAttacked(b, Opposite(side), c.Col, c.Row)
}
