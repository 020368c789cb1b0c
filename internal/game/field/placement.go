package field

// Setup phase view of a Board: the only way to put ships on it.
type PlacementGrid struct {
	board *Board
}

func NewPlacementGrid(b *Board) *PlacementGrid {
	return &PlacementGrid{b}
}

func (g *PlacementGrid) Config() Configuration {
	return g.board.conf
}

// Number of ships of type t placed since the last reset,
// sunk ones included.
func (g *PlacementGrid) TypeCount(t ShipType) int {
	return g.board.placedCounts[t]
}

func (g *PlacementGrid) IsFull() bool {
	return g.board.placed == g.board.conf.TotalShips()
}

func (g *PlacementGrid) Reset() {
	g.board.Reset()
}

// Checks whether a ship cell may be put at p: the cell and all
// of its 8 neighbours have to be in bounds and free.
//
// Consequently, border cells never accept a ship.
func (g *PlacementGrid) CanPlaceAt(p Pos) bool {
	b := g.board

	if !b.InBounds(p) || b.Cell(p).ID() != NoShip {
		return false
	}

	for _, shift := range NeighborShifts {
		n := p.Add(shift)
		if !b.InBounds(n) || b.Cell(n).ID() != NoShip {
			return false
		}
	}

	return true
}

// Tries to place a ship of type t, starting at p and extending along o.
//
// Returns id of the placed ship, or NoShip if the quota for t is
// exhausted or any of the ship cells is not placeable. Rejected
// placements leave the board untouched.
func (g *PlacementGrid) Place(p Pos, t ShipType, o Orientation) ShipID {
	b := g.board

	if b.placedCounts[t] >= b.conf.Counts[t] {
		return NoShip
	}

	step := o.Step()
	length := t.Length()

	cur := p
	for i := 0; i < length; i++ {
		if !g.CanPlaceAt(cur) {
			return NoShip
		}
		cur = cur.Add(step)
	}

	b.placed++
	b.placedCounts[t]++
	b.shipCount++
	b.typeCounts[t]++
	id := ShipID(b.placed)

	cur = p
	for i := 0; i < length; i++ {
		b.cells[b.index(cur)].setID(id)
		cur = cur.Add(step)
	}

	b.ships[id] = ShipRecord{
		Type:        t,
		HP:          length,
		Anchor:      p,
		Orientation: o,
	}

	return id
}
