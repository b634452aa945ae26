package rules

// genCommanderMoves implements the Commander's slide (range 10, +1 and
// diagonals when hero), with captures restricted to adjacency except for
// the face-to-face exception: a clear line to the enemy Commander along a
// shared file or rank makes that square a legal destination at any range
// (the "flying general" reading of the Open Question in spec §9).
func genCommanderMoves(b *Board, p *Piece, out *[]Square) {
	maxRange := heroRange(10, p.Hero)
	dirs := heroDirs(rookDirsSlice(), p.Hero)

	for _, d := range dirs {
		c, r := p.Col+d[0], p.Row+d[1]
		for step := 1; step <= maxRange && InBounds(c, r); step++ {
			if !landOnlyTerrain(c, r) {
				break
			}
			occ := b.PieceAt(c, r)
			if occ == nil {
				if destinationAllowed(p, c, r) {
					*out = append(*out, Square{c, r})
				}
				c += d[0]
				r += d[1]
				continue
			}
			if occ.Side == p.Side {
				if CanStack(p, occ, b) && destinationAllowed(p, c, r) {
					*out = append(*out, Square{c, r})
				}
				break
			}
			// enemy occupant: only legal if adjacent (step 1).
			if step == 1 {
				*out = append(*out, Square{c, r})
			}
			break
		}
	}

	if enemy := b.Commander(Opposite(p.Side)); enemy != nil {
		if (enemy.Col == p.Col || enemy.Row == p.Row) && clearBetween(b, p.Col, p.Row, enemy.Col, enemy.Row) {
			*out = append(*out, Square{enemy.Col, enemy.Row})
		}
	}
}

// clearBetween reports whether every square strictly between two aligned
// points is empty.
func clearBetween(b *Board, c1, r1, c2, r2 int) bool {
	dc, dr := sign(c2-c1), sign(r2-r1)
	c, r := c1+dc, r1+dr
	for c != c2 || r != r2 {
		if b.PieceAt(c, r) != nil {
			return false
		}
		c += dc
		r += dr
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
