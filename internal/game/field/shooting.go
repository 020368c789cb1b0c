package field

// Fire phase view of a Board.
type ShootingGrid struct {
	board *Board
	shots int
}

func NewShootingGrid(b *Board) *ShootingGrid {
	return &ShootingGrid{board: b}
}

func (g *ShootingGrid) Config() Configuration {
	return g.board.conf
}

func (g *ShootingGrid) InBounds(p Pos) bool {
	return g.board.InBounds(p)
}

// Total number of effective attacks made through this grid,
// i.e. ones that were neither Malformed nor Repeated.
// The counter survives board resets.
func (g *ShootingGrid) ShotsFired() int {
	return g.shots
}

func (g *ShootingGrid) AllSunk() bool {
	return g.board.shipCount == 0
}

// Number of surviving ships.
func (g *ShootingGrid) ShipCount() int {
	return g.board.shipCount
}

// Number of surviving ships of type t.
func (g *ShootingGrid) TypeCount(t ShipType) int {
	return g.board.typeCounts[t]
}

func (g *ShootingGrid) WasShot(p Pos) bool {
	return g.board.InBounds(p) && g.board.Cell(p).IsShot()
}

// Reports whether p is a shot cell of some ship, sunk or not.
func (g *ShootingGrid) WasDamaged(p Pos) bool {
	if !g.board.InBounds(p) {
		return false
	}

	cell := g.board.Cell(p)
	return cell.IsShot() && cell.ID() != NoShip
}

// Reports whether p is a cell of an already sunk ship.
func (g *ShootingGrid) WasSunk(p Pos) bool {
	if !g.board.InBounds(p) {
		return false
	}

	id := g.board.Cell(p).ID()
	return id != NoShip && g.board.Ship(id).IsSunk()
}

func (g *ShootingGrid) Attack(p Pos) AttackResult {
	b := g.board

	if !b.InBounds(p) {
		return AttackResult{Status: Malformed}
	}

	cell := &b.cells[b.index(p)]
	if cell.IsShot() {
		return AttackResult{Status: Repeated}
	}

	cell.markShot()
	g.shots++

	id := cell.ID()
	if id == NoShip {
		return AttackResult{Status: Missed}
	}

	if int(id) > b.placed {
		panic("cell references unknown ship")
	}

	ship := &b.ships[id]
	ship.HP--

	if ship.HP > 0 {
		return AttackResult{Status: Damaged, Type: ship.Type}
	}

	b.shipCount--
	b.typeCounts[ship.Type]--

	return AttackResult{Status: Sunk, Type: ship.Type}
}
