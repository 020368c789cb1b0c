package field

import "strings"

var (
	liveGlyphs = [4]byte{'S', 'B', 'D', 'C'}
	shotGlyphs = [4]byte{'s', 'b', 'd', 'c'}
)

const (
	emptyGlyph = '.'
	missGlyph  = '#'
)

func (b *Board) glyph(p Pos) byte {
	cell := b.Cell(p)
	id := cell.ID()

	if id == NoShip {
		if cell.IsShot() {
			return missGlyph
		}
		return emptyGlyph
	}

	t := b.Ship(id).Type
	if cell.IsShot() {
		return shotGlyphs[t]
	}
	return liveGlyphs[t]
}

// Renders board, one line per row:
//
//	.  empty cell     #  missed shot
//	S  submarine      s  shot submarine cell
//	B  boat           b  ...
//	D  destroyer
//	C  carrier
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.conf.W + 1) * b.conf.H)

	for y := 0; y < b.conf.H; y++ {
		for x := 0; x < b.conf.W; x++ {
			sb.WriteByte(b.glyph(Pos{x, y}))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
