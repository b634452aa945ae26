package rules

// genInfantryMoves: one square orthogonal; hero gets range 2 + diagonals.
func genInfantryMoves(b *Board, p *Piece, out *[]Square) {
	slideMoves(b, p, heroDirs(rookDirsSlice(), p.Hero), heroRange(1, p.Hero), landOnlyTerrain, true, out)
}

// genMilitiaMoves: one square orthogonal or diagonal; hero gets range 2.
func genMilitiaMoves(b *Board, p *Piece, out *[]Square) {
	slideMoves(b, p, allDirsSlice(), heroRange(1, p.Hero), landOnlyTerrain, true, out)
}

// genEngineerMoves: one square orthogonal; carrying {Aa, A, Ms} is legal via
// the normal stacking check in slideMoves.
func genEngineerMoves(b *Board, p *Piece, out *[]Square) {
	slideMoves(b, p, heroDirs(rookDirsSlice(), p.Hero), heroRange(1, p.Hero), landOnlyTerrain, true, out)
}

// genAntiAirMoves: one square orthogonal, same land terrain rule as every
// other land unit (see landOnlyTerrain).
func genAntiAirMoves(b *Board, p *Piece, out *[]Square) {
	slideMoves(b, p, heroDirs(rookDirsSlice(), p.Hero), heroRange(1, p.Hero), landOnlyTerrain, true, out)
}

// genHeadquartersMoves: immobile unless heroic, in which case it moves as
// a heroic infantry (range 2, orthogonal + diagonal).
func genHeadquartersMoves(b *Board, p *Piece, out *[]Square) {
	if !p.Hero {
		return
	}
	slideMoves(b, p, allDirsSlice(), 2, landOnlyTerrain, true, out)
}
