package commanderchess

import "commanderchess/internal/rules"

// PieceView is one serialized piece: id, owning side, kind, position,
// hero flag, and carrier id, matching the JSON adapter's documented
// `{id, player, kind, col, row, hero, carrier_id}` shape in field name
// (exported Go names here; the adapter collaborator handles the
// lower_snake_case wire rendering).
type PieceView struct {
	ID        int
	Side      rules.Side
	Kind      rules.Kind
	Col       int
	Row       int
	Hero      bool
	CarrierID int
}

// SerializedState is the full snapshot Serialize returns (§6): side to
// move, terminal flag, result string, the last move played, the mode
// and difficulty in force, every piece on the board, and — while the
// game is still ongoing — every legal move available to the side to
// move.
type SerializedState struct {
	ID         string
	SideToMove rules.Side
	Terminal   bool
	Result     string
	Winner     rules.Side
	LastMove   *LastMoveRecord
	Mode       string
	Difficulty string
	Pieces     []PieceView
	LegalMoves []Move
}

// Serialize snapshots g into the shape described in §6.
func (g *GameState) Serialize() SerializedState {
	pieces := make([]PieceView, 0, len(g.Pos.Board.Pieces))
	for _, p := range g.Pos.Board.Pieces {
		pieces = append(pieces, PieceView{
			ID: p.ID, Side: p.Side, Kind: p.Kind, Col: p.Col, Row: p.Row,
			Hero: p.Hero, CarrierID: p.CarrierID,
		})
	}

	state := SerializedState{
		ID:         g.ID,
		SideToMove: g.Pos.SideToMove,
		Terminal:   g.Terminal,
		Result:     g.Result.String(),
		Winner:     g.Winner,
		LastMove:   g.LastMove,
		Mode:       g.Mode.String(),
		Difficulty: g.Difficulty.String(),
		Pieces:     pieces,
	}
	if !g.Terminal {
		state.LegalMoves = rules.LegalMoves(g.Pos, g.Pos.SideToMove)
	}
	return state
}
