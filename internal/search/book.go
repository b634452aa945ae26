package search

import "commanderchess/internal/rules"

// bookEntry names a book move by source square instead of piece id (book
// moves are checked against the live position, whose piece ids won't
// match whatever the book was authored against).
type bookEntry struct {
	fromCol, fromRow int
	toCol, toRow     int
}

// openingBook is a short, hand-coded, side-mirrored list of opening
// candidates: navy stabilization (sliding a Navy off the back rank into
// open water) and small forward pushes, in the spirit of the teacher's
// package-level opening-book concept but without any persisted book file
// — just a literal slice, since the list is this short.
var openingBook = [...]bookEntry{
	{0, 1, 0, 4}, // Navy slides down the coastline, off the back rank
	{1, 1, 1, 4}, // the other Navy does the same
	{4, 2, 4, 3}, // Infantry steps toward the river
	{6, 2, 6, 3}, // mirrored Infantry push
	{3, 3, 3, 4}, // Militia probes forward
	{7, 3, 7, 4}, // mirrored Militia push
}

// mirrorForBlue flips a Red book entry to its Blue-side equivalent: the
// starting layout is mirrored top-to-bottom, so row r becomes Rows-1-r
// and nothing about the column changes.
func mirrorForBlue(e bookEntry) bookEntry {
	return bookEntry{
		fromCol: e.fromCol, fromRow: rules.Rows - 1 - e.fromRow,
		toCol: e.toCol, toRow: rules.Rows - 1 - e.toRow,
	}
}

// BookMove looks for a book candidate matching pos, validated against two
// safety checks before being handed back: it must not hand the opponent
// an immediate win, and it must not newly hang the mover's own Commander.
func BookMove(pos *rules.Position) (rules.Move, bool) {
	if len(pos.History) > 4 {
		return rules.Move{}, false
	}

	for _, e := range openingBook {
		entry := e
		if pos.SideToMove == rules.Blue {
			entry = mirrorForBlue(e)
		}
		mover := pos.Board.PieceAt(entry.fromCol, entry.fromRow)
		if mover == nil || mover.Side != pos.SideToMove {
			continue
		}
		mv := rules.Move{PieceID: mover.ID, DestCol: entry.toCol, DestRow: entry.toRow}
		legal := false
		for _, candidate := range rules.Moves(pos.Board, mover) {
			if candidate.Col == entry.toCol && candidate.Row == entry.toRow {
				legal = true
				break
			}
		}
		if !legal {
			continue
		}
		if bookMoveIsSafe(pos, mv) {
			return mv, true
		}
	}
	return rules.Move{}, false
}

// bookMoveIsSafe rejects a book candidate that hands the opponent an
// immediate win (commander capture, or domain elimination in a mode that
// cares) or leaves the mover's own commander newly in check.
func bookMoveIsSafe(pos *rules.Position, mv rules.Move) bool {
	child, ok := rules.Apply(pos, mv)
	if !ok {
		return false
	}
	if winner, result, terminal := rules.CheckTerminal(child); terminal && result == rules.Win && winner != pos.SideToMove {
		return false
	}
	return !rules.CommanderInCheck(child.Board, pos.SideToMove)
}
