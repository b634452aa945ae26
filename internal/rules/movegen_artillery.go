package rules

// genArtilleryMoves: three squares sliding, 8 directions (hero: range 4),
// land terrain (reef columns bridge the river); plus orthogonal fire up to
// 3 squares against an enemy occupying a sea square.
func genArtilleryMoves(b *Board, p *Piece, out *[]Square) {
	slideMoves(b, p, heroDirs(allDirsSlice(), p.Hero), heroRange(3, p.Hero), landOnlyTerrain, true, out)
	fireRay(b, p, rookDirsSlice(), 3, func(col, row int) bool { return IsSea(col) }, out)
}

// genMissileMoves: Missile is pure indirect fire — it relocates onto empty
// land squares only (two squares orthogonal, hero: range 3 + diagonals) and
// never captures by landing. Every capture comes from fire: range 2
// orthogonal or range 1 diagonal against any non-sea target.
func genMissileMoves(b *Board, p *Piece, out *[]Square) {
	moveOnly(b, p, heroDirs(rookDirsSlice(), p.Hero), heroRange(2, p.Hero), landOnlyTerrain, out)
	notSea := func(col, row int) bool { return !IsSea(col) }
	fireRay(b, p, rookDirsSlice(), 2, notSea, out)
	fireRay(b, p, bishopDirsSlice(), 1, notSea, out)
}
