package field

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
)

type HitStatus int

const (
	Malformed HitStatus = iota
	Repeated
	Missed
	Damaged
	Sunk
)

func (s *HitStatus) FromString(str string) error {
	switch str {
	case "malformed":
		*s = Malformed
	case "repeated":
		*s = Repeated
	case "miss":
		*s = Missed
	case "hit":
		*s = Damaged
	case "kill":
		*s = Sunk
	default:
		return fmt.Errorf("invalid hit status: %q", str)
	}
	return nil
}

func (s HitStatus) String() string {
	switch s {
	case Malformed:
		return "malformed"
	case Repeated:
		return "repeated"
	case Missed:
		return "miss"
	case Damaged:
		return "hit"
	case Sunk:
		return "kill"
	default:
		panic("invalid hit status")
	}
}

func (s HitStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Outcome of a single attack. Type is only meaningful
// for Damaged and Sunk.
type AttackResult struct {
	Status HitStatus
	Type   ShipType
}

// Ship ids have to stay below the hit bit of a cell.
const MaxFleet = int(cellHitMask) - 1

type Configuration struct {
	W, H   int
	Counts [4]int
}

func (c *Configuration) TotalShips() int {
	return c.Counts[0] + c.Counts[1] + c.Counts[2] + c.Counts[3]
}

func (c *Configuration) IsValid() error {
	if c.W <= 0 || c.H <= 0 {
		return fmt.Errorf("non-positive field size: [%d %d]", c.W, c.H)
	}

	if c.Counts[0] < 0 || c.Counts[1] < 0 || c.Counts[2] < 0 || c.Counts[3] < 0 {
		return fmt.Errorf("negative ship amount: %v", c.Counts)
	}

	total := c.TotalShips()
	if total <= 0 {
		return fmt.Errorf("summary ship count is non-positive: %v", c.Counts)
	}

	if total > MaxFleet {
		return fmt.Errorf("summary ship count %d exceeds the limit of %d", total, MaxFleet)
	}

	return nil
}

// Ship as it appears in a layout file.
type Ship struct {
	Pos
	Type        ShipType
	Orientation Orientation
}

// Parses a layout: a header line with field dimensions,
// followed by `<length> <h|v> <x> <y>` lines.
//
// Iteration stops at the first malformed line.
func ParseShips(src io.Reader) iter.Seq[Ship] {
	return func(yield func(s Ship) bool) {
		lines := bufio.NewScanner(src)

		// Skip first line with field dimensions
		lines.Scan()

		for lines.Scan() {
			var ship Ship
			var length int
			var direction rune

			n, err := fmt.Sscanf(lines.Text(), "%d %c %d %d", &length, &direction, &ship.X, &ship.Y)

			if err != nil || n != 4 {
				return
			}

			if ship.Type, err = ShipTypeFromLength(length); err != nil {
				return
			}

			switch direction {
			case 'v':
				ship.Orientation = YPlus
			case 'h':
				ship.Orientation = XPlus
			default:
				return
			}

			if !yield(ship) {
				return
			}
		}
	}
}
