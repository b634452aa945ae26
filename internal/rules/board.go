package rules

// Board holds the piece list plus a derived occupancy grid for O(1)
// blocking lookups. The grid stores the id of the uncarried occupant of
// each square, 0 meaning empty.
type Board struct {
	Pieces []*Piece
	grid   [NumSquares]int
	byID   map[int]int // piece id -> index in Pieces
	nextID int
}

func NewBoard() *Board {
	return &Board{byID: make(map[int]int, 40)}
}

// Clone performs a deep, independent copy: the snapshot half of the
// snapshot-based unmake design of §9 (Design Notes).
func (b *Board) Clone() *Board {
	nb := &Board{
		grid:   b.grid,
		byID:   make(map[int]int, len(b.Pieces)),
		nextID: b.nextID,
		Pieces: make([]*Piece, len(b.Pieces)),
	}
	for i, p := range b.Pieces {
		cp := *p
		nb.Pieces[i] = &cp
		nb.byID[cp.ID] = i
	}
	return nb
}

// AddPiece creates a new uncarried piece with a fresh stable id.
func (b *Board) AddPiece(side Side, kind Kind, col, row int, hero bool) *Piece {
	b.nextID++
	p := &Piece{ID: b.nextID, Side: side, Kind: kind, Col: col, Row: row, Hero: hero}
	b.byID[p.ID] = len(b.Pieces)
	b.Pieces = append(b.Pieces, p)
	b.grid[indexOf(col, row)] = p.ID
	return p
}

func (b *Board) ByID(id int) *Piece {
	if idx, ok := b.byID[id]; ok {
		return b.Pieces[idx]
	}
	return nil
}

// PieceAt returns the uncarried occupant of a square, or nil.
func (b *Board) PieceAt(col, row int) *Piece {
	if !InBounds(col, row) {
		return nil
	}
	id := b.grid[indexOf(col, row)]
	if id == 0 {
		return nil
	}
	return b.ByID(id)
}

// Carried returns the pieces directly carried by carrierID.
func (b *Board) Carried(carrierID int) []*Piece {
	var out []*Piece
	for _, p := range b.Pieces {
		if p.CarrierID == carrierID {
			out = append(out, p)
		}
	}
	return out
}

// CarriedRecursive returns the full descendant set (carrier chains are
// single-level in practice, but walked fully to be safe).
func (b *Board) CarriedRecursive(carrierID int) []*Piece {
	var out []*Piece
	frontier := []int{carrierID}
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		for _, p := range b.Carried(id) {
			out = append(out, p)
			frontier = append(frontier, p.ID)
		}
	}
	return out
}

// moveGrid updates occupancy bookkeeping after a piece's square changes;
// it is a no-op for carried pieces (they never occupy the grid directly).
func (b *Board) moveGrid(p *Piece, fromCol, fromRow, toCol, toRow int) {
	if p.CarrierID != 0 {
		return
	}
	if InBounds(fromCol, fromRow) && b.grid[indexOf(fromCol, fromRow)] == p.ID {
		b.grid[indexOf(fromCol, fromRow)] = 0
	}
	b.grid[indexOf(toCol, toRow)] = p.ID
}

// setCarried updates carrying state, clearing/occupying the grid as needed.
func (b *Board) setCarried(p *Piece, carrierID int) {
	if carrierID != 0 {
		// becoming carried: vacate the grid
		if InBounds(p.Col, p.Row) && b.grid[indexOf(p.Col, p.Row)] == p.ID {
			b.grid[indexOf(p.Col, p.Row)] = 0
		}
		p.CarrierID = carrierID
		return
	}
	// disembarking: occupy the grid at its current square
	p.CarrierID = 0
	b.grid[indexOf(p.Col, p.Row)] = p.ID
}

// RemoveSubtree removes a piece and every piece it carries (directly or
// transitively), as required when a carrier is captured.
func (b *Board) RemoveSubtree(id int) {
	for _, child := range b.CarriedRecursive(id) {
		b.removeOne(child.ID)
	}
	b.removeOne(id)
}

func (b *Board) removeOne(id int) {
	idx, ok := b.byID[id]
	if !ok {
		return
	}
	p := b.Pieces[idx]
	if p.CarrierID == 0 && InBounds(p.Col, p.Row) && b.grid[indexOf(p.Col, p.Row)] == id {
		b.grid[indexOf(p.Col, p.Row)] = 0
	}
	last := len(b.Pieces) - 1
	b.Pieces[idx] = b.Pieces[last]
	b.byID[b.Pieces[idx].ID] = idx
	b.Pieces = b.Pieces[:last]
	delete(b.byID, id)
}

// Commander returns the side's commander, or nil if captured.
func (b *Board) Commander(side Side) *Piece {
	for _, p := range b.Pieces {
		if p.Side == side && p.Kind == Commander {
			return p
		}
	}
	return nil
}

// CountAlive returns how many uncarried-or-carried pieces of a kind a side
// still has on the board (carried pieces still count as "remaining").
func (b *Board) CountAlive(side Side, kinds ...Kind) int {
	n := 0
	for _, p := range b.Pieces {
		if p.Side != side {
			continue
		}
		for _, k := range kinds {
			if p.Kind == k {
				n++
				break
			}
		}
	}
	return n
}
