// Command debug prints a quick sanity snapshot of the starting
// position: side to move, piece count, and legal move count, the
// smallest possible check that setup and move generation haven't
// broken. Grounded on the teacher's own cmd/debug/main.go, a one-shot
// position-and-move-count print.
package main

import (
	"fmt"

	"commanderchess/internal/rules"
)

func main() {
	pos := rules.NewInitialPosition(rules.ModeFull)
	fmt.Println("side to move:", pos.SideToMove)
	fmt.Println("pieces:", len(pos.Board.Pieces))
	moves := rules.GenerateMoves(pos.Board, pos.SideToMove)
	fmt.Println("legal moves:", len(moves))
}
