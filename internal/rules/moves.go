package rules

// Moves returns every legal destination for p on b. A carried piece always
// yields no moves — it moves only as part of its carrier (§4.1 precondition).
func Moves(b *Board, p *Piece) []Square {
	if p.CarrierID != 0 {
		return nil
	}
	out := make([]Square, 0, 8)
	switch p.Kind {
	case Commander:
		genCommanderMoves(b, p, &out)
	case Headquarters:
		genHeadquartersMoves(b, p, &out)
	case Infantry:
		genInfantryMoves(b, p, &out)
	case Militia:
		genMilitiaMoves(b, p, &out)
	case Tank:
		genTankMoves(b, p, &out)
	case Engineer:
		genEngineerMoves(b, p, &out)
	case Artillery:
		genArtilleryMoves(b, p, &out)
	case AntiAir:
		genAntiAirMoves(b, p, &out)
	case Missile:
		genMissileMoves(b, p, &out)
	case AirForce:
		genAirForceMoves(b, p, &out)
	case Navy:
		genNavyMoves(b, p, &out)
	}
	return out
}

// LegalMoves enumerates every move available to side on the position, for
// the external-facing API's "is this legal" questions. It returns the full
// GenerateMoves list: moves that leave the mover's own Commander under
// attack are not filtered out, since Commander Chess, unlike international
// chess, does not forbid them. Search uses GenerateMoves directly and
// relies on evaluation/terminal detection to penalize commander loss.
func LegalMoves(pos *Position, side Side) []Move {
	return GenerateMoves(pos.Board, side)
}

// GenerateMoves collects every (piece, destination) pair for side's
// uncarried pieces.
func GenerateMoves(b *Board, side Side) []Move {
	out := make([]Move, 0, 48)
	for _, p := range b.Pieces {
		if p.Side != side || p.CarrierID != 0 {
			continue
		}
		for _, sq := range Moves(b, p) {
			out = append(out, Move{PieceID: p.ID, DestCol: sq.Col, DestRow: sq.Row})
		}
	}
	return out
}
