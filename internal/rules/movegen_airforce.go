package rules

// genAirForceMoves: Air Force slides range 4 (hero: 5) along the 8
// rook/bishop rays, the same ray walk slideMoves uses for every other
// slider, except it ignores terrain entirely — sea, river and HQ squares
// (HQ handled by destinationAllowed) never block the flight path. The ray
// stops at the first occupied square it can interact with: an empty square
// is a plain flight, a friendly one is legal only if this Air Force may
// stack there (and blocks the ray either way), an enemy one is a landing
// capture (dogfight if the enemy is also an Air Force) or, for any other
// kind, a bombing run that kills the target without the aircraft ever
// occupying the square (see Apply). Kamikaze-on-entry and
// bombardment-return are apply()-time effects, not generation-time
// filters — the destination stays legal even though it may prove
// self-destructive.
func genAirForceMoves(b *Board, p *Piece, out *[]Square) {
	maxRange := heroRange(4, p.Hero)
	slideMoves(b, p, allDirsSlice(), maxRange, anyTerrain, true, out)
}
