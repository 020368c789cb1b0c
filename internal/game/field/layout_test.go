package field_test

import (
	"bytes"
	_ "embed"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battlesim/internal/game/field"
)

//go:embed testdata/fleet.txt
var txtFleet []byte

var fleetConf = field.Configuration{
	W:      10,
	H:      10,
	Counts: [4]int{4, 3, 2, 1},
}

func loadFleet(t *testing.T, g *field.PlacementGrid) {
	t.Helper()
	require.NoError(t, field.LoadShips(g, field.ParseShips(bytes.NewReader(txtFleet))))
}

func TestLoadShips(t *testing.T) {
	t.Run("Fleet", func(t *testing.T) {
		b, g, _ := newGrids(fleetConf)
		loadFleet(t, g)

		expected := "" +
			"..........\n" +
			".CCCC.DDD.\n" +
			"..........\n" +
			".DDD.BB.S.\n" +
			"..........\n" +
			".BB.S..B..\n" +
			".......B..\n" +
			".S.S......\n" +
			"..........\n" +
			"..........\n"

		assert.Equal(t, expected, b.String())
		assert.True(t, g.IsFull())
		assert.Equal(t, 10, b.ShipCount())
	})

	t.Run("ReplacesPreviousShips", func(t *testing.T) {
		b, g, _ := newGrids(fleetConf)
		loadFleet(t, g)
		loadFleet(t, g)

		assert.Equal(t, 10, b.Placed())
	})

	// A . .
	// . . .
	// . . .
	t.Run("ShipOnBorder", func(t *testing.T) {
		_, g, _ := newGrids(field.Configuration{W: 3, H: 3, Counts: [4]int{1, 0, 0, 0}})

		ships := slices.Values([]field.Ship{
			{Pos: field.Pos{X: 0, Y: 0}, Type: field.Submarine},
		})

		err := field.LoadShips(g, ships)
		assert.ErrorIs(t, err, field.ErrShipRejected)
	})

	// . . . . . .
	// . A A A . .
	// . . . . B .
	// . . . . B .
	// . . . . . .
	t.Run("ShipsTouchingCorners", func(t *testing.T) {
		_, g, _ := newGrids(field.Configuration{W: 6, H: 6, Counts: [4]int{0, 1, 1, 0}})

		ships := slices.Values([]field.Ship{
			{Pos: field.Pos{X: 1, Y: 1}, Type: field.Destroyer, Orientation: field.XPlus},
			{Pos: field.Pos{X: 4, Y: 2}, Type: field.Boat, Orientation: field.YPlus},
		})

		err := field.LoadShips(g, ships)
		assert.ErrorIs(t, err, field.ErrShipRejected)
	})

	t.Run("TooManyShips", func(t *testing.T) {
		_, g, _ := newGrids(field.Configuration{W: 8, H: 8, Counts: [4]int{1, 0, 0, 0}})

		ships := slices.Values([]field.Ship{
			{Pos: field.Pos{X: 1, Y: 1}, Type: field.Submarine},
			{Pos: field.Pos{X: 5, Y: 5}, Type: field.Submarine},
		})

		err := field.LoadShips(g, ships)
		assert.ErrorIs(t, err, field.ErrShipRejected)
	})

	t.Run("MissingShips", func(t *testing.T) {
		_, g, _ := newGrids(field.Configuration{W: 8, H: 8, Counts: [4]int{2, 0, 0, 0}})

		ships := slices.Values([]field.Ship{
			{Pos: field.Pos{X: 1, Y: 1}, Type: field.Submarine},
		})

		err := field.LoadShips(g, ships)
		assert.ErrorIs(t, err, field.ErrFleetIncomplete)
	})
}

func TestParseShips(t *testing.T) {
	t.Run("StopsAtMalformedLine", func(t *testing.T) {
		src := "10 10\n4 h 1 1\n2 v 5 5\n3 x 1 7\n1 h 8 8\n"

		ships := slices.Collect(field.ParseShips(strings.NewReader(src)))

		assert.Equal(t, []field.Ship{
			{Pos: field.Pos{X: 1, Y: 1}, Type: field.Carrier, Orientation: field.XPlus},
			{Pos: field.Pos{X: 5, Y: 5}, Type: field.Boat, Orientation: field.YPlus},
		}, ships)
	})

	t.Run("InvalidLength", func(t *testing.T) {
		ships := slices.Collect(field.ParseShips(strings.NewReader("10 10\n5 h 1 1\n")))
		assert.Empty(t, ships)
	})

	t.Run("Empty", func(t *testing.T) {
		ships := slices.Collect(field.ParseShips(strings.NewReader("")))
		assert.Empty(t, ships)
	})
}

func TestDumpShips(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		b, g, _ := newGrids(fleetConf)
		loadFleet(t, g)

		var buf bytes.Buffer
		require.NoError(t, field.DumpShips(&buf, b))
		assert.Equal(t, string(txtFleet), buf.String())

		other, otherG, _ := newGrids(fleetConf)
		require.NoError(t, field.LoadShips(otherG, field.ParseShips(&buf)))
		assert.Equal(t, b.String(), other.String())
	})

	t.Run("NegativeOrientations", func(t *testing.T) {
		b, g, _ := newGrids(field.Configuration{W: 8, H: 8, Counts: [4]int{0, 0, 1, 1}})

		require.NotEqual(t, field.NoShip, g.Place(field.Pos{X: 6, Y: 1}, field.Carrier, field.XMinus))
		require.NotEqual(t, field.NoShip, g.Place(field.Pos{X: 5, Y: 6}, field.Destroyer, field.YMinus))

		var buf bytes.Buffer
		require.NoError(t, field.DumpShips(&buf, b))
		assert.Equal(t, "8 8\n4 h 3 1\n3 v 5 4\n", buf.String())

		other, otherG, _ := newGrids(b.Config())
		require.NoError(t, field.LoadShips(otherG, field.ParseShips(&buf)))
		assert.Equal(t, b.String(), other.String())
	})
}
