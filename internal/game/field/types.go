package field

import "fmt"

type Pos struct {
	X, Y int
}

func (p Pos) Add(other Pos) Pos {
	return Pos{p.X + other.X, p.Y + other.Y}
}

// Offsets of the 8 cells surrounding a position.
var NeighborShifts = [8]Pos{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

type Orientation uint8

const (
	XPlus Orientation = iota
	YPlus
	XMinus
	YMinus
)

// Fixed order used both for random sampling and for hunting.
var Orientations = [4]Orientation{XMinus, XPlus, YMinus, YPlus}

func (o Orientation) Step() Pos {
	switch o {
	case XPlus:
		return Pos{1, 0}
	case YPlus:
		return Pos{0, 1}
	case XMinus:
		return Pos{-1, 0}
	case YMinus:
		return Pos{0, -1}
	default:
		panic("invalid orientation")
	}
}

func (o Orientation) String() string {
	switch o {
	case XPlus:
		return "+x"
	case YPlus:
		return "+y"
	case XMinus:
		return "-x"
	case YMinus:
		return "-y"
	default:
		panic("invalid orientation")
	}
}

type ShipType uint8

const (
	Submarine ShipType = iota
	Boat
	Destroyer
	Carrier
)

var ShipTypes = [4]ShipType{Submarine, Boat, Destroyer, Carrier}

func (t ShipType) Length() int {
	return int(t) + 1
}

func ShipTypeFromLength(length int) (ShipType, error) {
	if length < 1 || length > len(ShipTypes) {
		return 0, fmt.Errorf("invalid ship length: %d", length)
	}
	return ShipType(length - 1), nil
}

func (t ShipType) String() string {
	switch t {
	case Submarine:
		return "submarine"
	case Boat:
		return "boat"
	case Destroyer:
		return "destroyer"
	case Carrier:
		return "carrier"
	default:
		panic("invalid ship type")
	}
}

// Ship identifier. Zero is reserved for "no ship".
type ShipID uint8

const NoShip ShipID = 0
