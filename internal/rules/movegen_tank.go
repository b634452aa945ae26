package rules

// genTankMoves: two squares orthogonal sliding (hero: range 3 + diagonals),
// plus "fire in place" against an enemy on a sea square within rook range 2
// (hero range unaffected — the fire-in-place clause names a fixed range).
func genTankMoves(b *Board, p *Piece, out *[]Square) {
	slideMoves(b, p, heroDirs(rookDirsSlice(), p.Hero), heroRange(2, p.Hero), landOnlyTerrain, true, out)
	fireRay(b, p, rookDirsSlice(), 2, func(col, row int) bool { return IsSea(col) }, out)
}
