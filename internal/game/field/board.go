package field

type Cell uint8 // 1:7 <-> IsShot:ShipID

const (
	cellHitMask Cell = 1 << 7
	cellIDMask  Cell = cellHitMask - 1
)

func (c Cell) ID() ShipID {
	return ShipID(c & cellIDMask)
}

func (c Cell) IsShot() bool {
	return c&cellHitMask != 0
}

func (c *Cell) setID(id ShipID) {
	*c |= Cell(id) & cellIDMask
}

func (c *Cell) markShot() {
	*c |= cellHitMask
}

type ShipRecord struct {
	Type        ShipType
	HP          int
	Anchor      Pos
	Orientation Orientation
}

func (r ShipRecord) IsSunk() bool {
	return r.HP == 0
}

// Board is the shared state behind PlacementGrid and ShootingGrid.
//
// Board is not thread safe. Placement and shooting are expected
// to be strictly sequential phases.
type Board struct {
	conf  Configuration
	cells []Cell

	placed       int
	placedCounts [4]int
	shipCount    int
	typeCounts   [4]int

	// Indexed by ShipID. Entries above placed are left over
	// from previous rounds and are never read.
	ships []ShipRecord
}

// Creates an empty board. conf is expected to be valid,
// see Configuration.IsValid.
func NewBoard(conf Configuration) *Board {
	if conf.TotalShips() > MaxFleet {
		panic("fleet does not fit into cell encoding")
	}

	return &Board{
		conf:  conf,
		cells: make([]Cell, conf.W*conf.H),
		ships: make([]ShipRecord, conf.TotalShips()+1),
	}
}

func (b *Board) index(p Pos) int {
	return p.X*b.conf.H + p.Y
}

func (b *Board) Config() Configuration {
	return b.conf
}

func (b *Board) Width() int {
	return b.conf.W
}

func (b *Board) Height() int {
	return b.conf.H
}

func (b *Board) InBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.conf.W && p.Y < b.conf.H
}

// Returns contents of an in-bounds cell.
func (b *Board) Cell(p Pos) Cell {
	return b.cells[b.index(p)]
}

func (b *Board) Ship(id ShipID) ShipRecord {
	if id == NoShip || int(id) > b.placed {
		panic("ship id out of range")
	}
	return b.ships[id]
}

// Number of live ships.
func (b *Board) ShipCount() int {
	return b.shipCount
}

// Number of live ships of the given type.
func (b *Board) TypeCount(t ShipType) int {
	return b.typeCounts[t]
}

// Number of ships placed since the last reset. Ship ids are
// handed out sequentially, so this is also the highest valid id.
func (b *Board) Placed() int {
	return b.placed
}

// Reverts board to the freshly created state without reallocating.
func (b *Board) Reset() {
	clear(b.cells)
	b.typeCounts = [4]int{}
	b.placedCounts = [4]int{}
	b.shipCount = 0
	b.placed = 0
}
