package rules

// Apply resolves a pseudo-legal move against pos and returns the resulting
// position. It never mutates pos — the caller keeps its own copy, matching
// the snapshot-based unmake design (Design Notes §9): there is no Unapply,
// only discarding the returned clone.
//
// Apply does not re-derive legality: it trusts mv came from GenerateMoves
// (or an external caller that already validated it against LegalMoves).
func Apply(pos *Position, mv Move) (*Position, bool) {
	mover := pos.Board.ByID(mv.PieceID)
	if mover == nil || mover.Side != pos.SideToMove || mover.CarrierID != 0 {
		return nil, false
	}
	if !InBounds(mv.DestCol, mv.DestRow) {
		return nil, false
	}

	np := pos.Clone()
	b := np.Board
	self := b.ByID(mv.PieceID)
	target := b.PieceAt(mv.DestCol, mv.DestRow)

	switch {
	case target == nil:
		relocate(b, self, mv.DestCol, mv.DestRow)
		applyAirForceKamikaze(b, self)
	case target.Side == self.Side:
		b.setCarried(target, self.ID)
		relocate(b, self, mv.DestCol, mv.DestRow)
		applyAirForceKamikaze(b, self)
	case fireCapture(self.Kind, mv.DestCol):
		b.RemoveSubtree(target.ID)
	case self.Kind == AirForce && target.Kind != AirForce:
		// bombing run: the strike always kills the ground/sea target. The
		// aircraft flies low enough over the target square to do it, so it
		// is exposed to anti-air there even though it never lands — if
		// exposed it is shot down on the way out; otherwise it survives
		// and returns to the square it started from.
		b.RemoveSubtree(target.ID)
		if !self.Hero && inEnemyAntiAirRing(b, self.Side, mv.DestCol, mv.DestRow) {
			b.RemoveSubtree(self.ID)
		}
	default:
		// dogfight: an Air Force capturing an enemy Air Force lands there.
		b.RemoveSubtree(target.ID)
		relocate(b, self, mv.DestCol, mv.DestRow)
		applyAirForceKamikaze(b, self)
	}

	promote(b)

	np.SideToMove = Opposite(np.SideToMove)
	np.Hash = Hash(b, np.SideToMove)
	np.pushHistory(np.Hash)
	return np, true
}

// fireCapture reports whether mover eliminates an occupant of (destCol,*)
// by fire rather than by landing on it: Missile and Navy always fire,
// Tank and Artillery fire only at sea targets they cannot physically enter.
func fireCapture(k Kind, destCol int) bool {
	switch k {
	case Missile, Navy:
		return true
	case Tank, Artillery:
		return IsSea(destCol)
	default:
		return false
	}
}

// relocate moves p (and anything it carries, recursively) onto (col,row).
func relocate(b *Board, p *Piece, col, row int) {
	fromCol, fromRow := p.Col, p.Row
	cargo := b.CarriedRecursive(p.ID)
	p.Col, p.Row = col, row
	b.moveGrid(p, fromCol, fromRow, col, row)
	for _, c := range cargo {
		c.Col, c.Row = col, row
	}
}
