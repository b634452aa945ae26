package rules

// promote grants heroic status to any piece that is now the last of its
// kind remaining for its side — carried or not, alive counts. Run after
// every Apply, since a capture changes counts for the losing side, not
// the mover. Looping to a fixed point costs nothing extra in practice
// (one pass settles it; a second pass never finds new work) but keeps the
// rule honest if a future kind interaction ever makes two promotions
// depend on each other.
func promote(b *Board) {
	for {
		changed := false
		for _, side := range [2]Side{Red, Blue} {
			for k := Kind(0); k < numKinds; k++ {
				if k == Headquarters {
					continue // HQ is never heroic
				}
				var lone *Piece
				n := 0
				for _, p := range b.Pieces {
					if p.Side == side && p.Kind == k {
						n++
						lone = p
					}
				}
				if n == 1 && !lone.Hero {
					lone.Hero = true
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}
