package rules

// seeMaxPlies caps the exchange sequence: deep multi-piece exchanges this
// far into a capture are rare enough on an 11x12 board that the tail
// contributes nothing search can't re-derive by actually searching on.
const seeMaxPlies = 6

// SEE estimates the material outcome of a capture sequence on (toCol,toRow)
// started by the piece pieceID taking whatever sits there now, using the
// classic least-valuable-attacker swap algorithm. It works on a scratch
// clone of b and never touches the caller's board.
//
// The simulation always resolves a capture as "the attacker occupies the
// square" even for pieces (Tank, Artillery, Missile, Navy) whose real
// Apply() sometimes fires in place instead — SEE only needs the material
// trade, not the exact post-move geometry, so this simplification is
// harmless to the estimate.
func SEE(b *Board, pieceID int, toCol, toRow int) int {
	work := b.Clone()
	mover := work.ByID(pieceID)
	target := work.PieceAt(toCol, toRow)
	if mover == nil || target == nil {
		return 0
	}

	gains := make([]int, 0, seeMaxPlies)
	gains = append(gains, target.Kind.Value())
	work.RemoveSubtree(target.ID)
	relocate(work, mover, toCol, toRow)

	lastValue := mover.Kind.Value()
	used := map[int]bool{mover.ID: true}
	turn := Opposite(mover.Side)

	for ply := 1; ply < seeMaxPlies; ply++ {
		attacker := leastValuableAttacker(work, turn, toCol, toRow, used)
		if attacker == nil {
			break
		}
		gains = append(gains, lastValue-gains[len(gains)-1])
		if occ := work.PieceAt(toCol, toRow); occ != nil {
			work.RemoveSubtree(occ.ID)
		}
		relocate(work, attacker, toCol, toRow)
		lastValue = attacker.Kind.Value()
		used[attacker.ID] = true
		turn = Opposite(turn)
	}

	for i := len(gains) - 1; i > 0; i-- {
		if gains[i] > -gains[i-1] {
			gains[i-1] = -gains[i]
		}
	}
	return gains[0]
}

func leastValuableAttacker(b *Board, side Side, col, row int, used map[int]bool) *Piece {
	var best *Piece
	for _, p := range Attackers(b, side, col, row) {
		if used[p.ID] {
			continue
		}
		if best == nil || p.Kind.Value() < best.Kind.Value() {
			best = p
		}
	}
	return best
}
