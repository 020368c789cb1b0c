package field

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

var (
	ErrShipRejected    = errors.New("ship rejected")
	ErrFleetIncomplete = errors.New("fleet does not match configuration")
)

// Replaces whatever is on the grid with the given ships.
//
// Ships are placed under the usual rules, so a layout with
// touching ships, ships on the border or extra ships of some
// type is rejected. So is a layout that leaves the fleet short.
func LoadShips(g *PlacementGrid, ships iter.Seq[Ship]) error {
	g.Reset()

	for ship := range ships {
		if g.Place(ship.Pos, ship.Type, ship.Orientation) == NoShip {
			return fmt.Errorf("%w: %s at [%d %d] %s", ErrShipRejected, ship.Type, ship.X, ship.Y, ship.Orientation)
		}
	}

	if !g.IsFull() {
		return ErrFleetIncomplete
	}

	return nil
}

// Lists ships placed on the board, in placement order. Ships facing
// a negative direction are reported from their other end, so the
// result always uses XPlus or YPlus.
func (b *Board) Ships() iter.Seq[Ship] {
	return func(yield func(Ship) bool) {
		for id := 1; id <= b.placed; id++ {
			rec := b.ships[id]
			ship := Ship{Pos: rec.Anchor, Type: rec.Type, Orientation: rec.Orientation}

			tail := rec.Type.Length() - 1
			switch rec.Orientation {
			case XMinus:
				ship.X -= tail
				ship.Orientation = XPlus
			case YMinus:
				ship.Y -= tail
				ship.Orientation = YPlus
			}

			if !yield(ship) {
				return
			}
		}
	}
}

// Writes board ships in the format understood by ParseShips.
func DumpShips(w io.Writer, b *Board) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", b.conf.W, b.conf.H); err != nil {
		return err
	}

	for ship := range b.Ships() {
		direction := 'h'
		if ship.Orientation == YPlus {
			direction = 'v'
		}

		if _, err := fmt.Fprintf(w, "%d %c %d %d\n", ship.Type.Length(), direction, ship.X, ship.Y); err != nil {
			return err
		}
	}

	return nil
}
