//go:build rulesdebug

package rules

import "fmt"

// checkInvariants walks the board and panics on the first violation it
// checks: an uncarried piece out of bounds or missing from the occupancy
// grid, two uncarried pieces on one square, a non-Commander on an HQ
// square, or more than one Commander per side. Stacking capacity is not
// checked here.
// Built only under the rulesdebug tag — search hot paths never pay for
// this in a normal build.
func checkInvariants(b *Board) {
	seen := make(map[int]int, len(b.Pieces))
	for _, p := range b.Pieces {
		if p.CarrierID == 0 {
			if !InBounds(p.Col, p.Row) {
				panic(fmt.Sprintf("piece %d out of bounds at (%d,%d)", p.ID, p.Col, p.Row))
			}
			id := b.grid[indexOf(p.Col, p.Row)]
			if id != p.ID {
				panic(fmt.Sprintf("grid mismatch at (%d,%d): want %d got %d", p.Col, p.Row, p.ID, id))
			}
			seen[indexOf(p.Col, p.Row)]++
		}
		if IsHQ(p.Col, p.Row) && p.Kind != Commander {
			panic(fmt.Sprintf("non-commander piece %d sitting on an HQ square", p.ID))
		}
	}
	for sq, n := range seen {
		if n > 1 {
			panic(fmt.Sprintf("square %d holds %d uncarried pieces", sq, n))
		}
	}
	for _, side := range [2]Side{Red, Blue} {
		n := 0
		for _, p := range b.Pieces {
			if p.Side == side && p.Kind == Commander {
				n++
			}
		}
		if n > 1 {
			panic(fmt.Sprintf("side %v has %d commanders", side, n))
		}
	}
}
