package rules

// genNavyMoves: four squares sliding in 8 directions over navigable water
// (hero: range 5), relocating onto empty water only — like Missile, a Navy
// never captures by landing. Bombardment is two separate fire profiles: up
// to 3 squares orthogonal against land/air targets ashore, and full
// orthogonal range against an enemy Navy.
func genNavyMoves(b *Board, p *Piece, out *[]Square) {
	maxRange := heroRange(4, p.Hero)
	moveOnly(b, p, heroDirs(allDirsSlice(), p.Hero), maxRange, navigableTerrain, out)

	ashore := func(col, row int) bool { return !IsSea(col) && b.PieceAt(col, row).Kind != Navy }
	fireRay(b, p, rookDirsSlice(), 3, ashore, out)

	enemyNavy := func(col, row int) bool { return b.PieceAt(col, row).Kind == Navy }
	fireRay(b, p, rookDirsSlice(), maxRange, enemyNavy, out)
}
