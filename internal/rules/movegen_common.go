package rules

// terrainFn reports whether a piece may occupy/pass through (col,row).
// A false result always stops a sliding ray.
type terrainFn func(col, row int) bool

func anyTerrain(int, int) bool { return true }

// landOnlyTerrain excludes every navigable square: sea, plus river-row
// squares away from the two reef columns. Reef columns (5, 7) are the only
// dry river crossing every land unit shares; Artillery/Anti-Air/Missile get
// no extra terrain carve-out beyond this, and there is no separate ferry
// exception either: a carried piece has no moves of its own (see Moves)
// and only travels with its carrier.
func landOnlyTerrain(col, row int) bool { return !IsNavigable(col, row) }

func navigableTerrain(col, row int) bool { return IsNavigable(col, row) }

// slideMoves walks each direction up to maxRange steps, appending legal
// destinations. friendlyBlocks controls whether a friendly occupant halts
// the ray (true) or merely occupies one square without stopping the slide
// (false). Every current caller passes true; Navy's pass-through motion
// is done by moveOnly instead.
func slideMoves(b *Board, p *Piece, dirs [][2]int, maxRange int, terrain terrainFn, friendlyBlocks bool, out *[]Square) {
	for _, d := range dirs {
		c, r := p.Col+d[0], p.Row+d[1]
		for step := 1; step <= maxRange && InBounds(c, r); step++ {
			if !terrain(c, r) {
				break
			}
			occ := b.PieceAt(c, r)
			switch {
			case occ == nil:
				if destinationAllowed(p, c, r) {
					*out = append(*out, Square{c, r})
				}
			case occ.Side == p.Side:
				if CanStack(p, occ, b) && destinationAllowed(p, c, r) {
					*out = append(*out, Square{c, r})
				}
				if friendlyBlocks {
					c, r = -1, -1 // force loop exit via InBounds check below
				}
			default:
				if destinationAllowed(p, c, r) {
					*out = append(*out, Square{c, r})
				}
				c, r = -1, -1
			}
			if c == -1 {
				break
			}
			c += d[0]
			r += d[1]
		}
	}
}

// stepMoves is slideMoves specialised to a single step (range 1), used by
// Infantry/Militia/Engineer/Anti-Air.
func stepMoves(b *Board, p *Piece, dirs [][2]int, terrain terrainFn, out *[]Square) {
	slideMoves(b, p, dirs, 1, terrain, true, out)
}

// moveOnly walks each direction up to maxRange steps, adding empty squares
// and friendly squares it may legally stack onto, but never an enemy
// square — for units (Missile, Navy) whose only way to eliminate a piece
// is fire, never landing on it. An unstackable friendly occupant is not an
// obstacle: the ray glides past it, matching friendlyBlocks=false sliding.
func moveOnly(b *Board, p *Piece, dirs [][2]int, maxRange int, terrain terrainFn, out *[]Square) {
	for _, d := range dirs {
		c, r := p.Col+d[0], p.Row+d[1]
		for step := 1; step <= maxRange && InBounds(c, r); step++ {
			if !terrain(c, r) {
				break
			}
			occ := b.PieceAt(c, r)
			switch {
			case occ == nil:
				if destinationAllowed(p, c, r) {
					*out = append(*out, Square{c, r})
				}
			case occ.Side == p.Side:
				if CanStack(p, occ, b) && destinationAllowed(p, c, r) {
					*out = append(*out, Square{c, r})
					goto nextDir
				}
				// not stackable: glide past, not an obstacle
			default:
				goto nextDir // enemy blocks passage; only fire can reach it
			}
			c += d[0]
			r += d[1]
			continue
		nextDir:
			break
		}
	}
}

// destinationAllowed excludes HQ squares for every kind but Commander.
func destinationAllowed(p *Piece, col, row int) bool {
	if IsHQ(col, row) && p.Kind != Commander {
		return false
	}
	return true
}

// fireRay walks a single ray up to maxRange, stopping at the first occupied
// square. If that occupant is an enemy passing domainOK, its square is a
// legal fire destination (stay-and-fire: the mover never actually lands
// there — apply() resolves that).
func fireRay(b *Board, p *Piece, dirs [][2]int, maxRange int, domainOK func(col, row int) bool, out *[]Square) {
	for _, d := range dirs {
		c, r := p.Col+d[0], p.Row+d[1]
		for step := 1; step <= maxRange && InBounds(c, r); step++ {
			occ := b.PieceAt(c, r)
			if occ == nil {
				c += d[0]
				r += d[1]
				continue
			}
			if occ.Side != p.Side && domainOK(c, r) {
				*out = append(*out, Square{c, r})
			}
			break
		}
	}
}

// heroRange adds the +1 range hero bonus (§4.1 table preamble).
func heroRange(base int, hero bool) int {
	if hero {
		return base + 1
	}
	return base
}

// heroDirs adds diagonals for hero pieces that are otherwise orthogonal-only.
func heroDirs(base [][2]int, hero bool) [][2]int {
	if !hero {
		return base
	}
	out := make([][2]int, 0, 8)
	out = append(out, base...)
	out = append(out, bishopDirs[:]...)
	return out
}

func rookDirsSlice() [][2]int   { return append([][2]int{}, rookDirs[:]...) }
func bishopDirsSlice() [][2]int { return append([][2]int{}, bishopDirs[:]...) }
func allDirsSlice() [][2]int {
	d := allDirs8()
	return append([][2]int{}, d[:]...)
}
