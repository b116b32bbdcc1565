package components

import "strings"

// Grid renders a boolean sample field, one glyph per cell. Used for the
// wafer map in labs that declare a layout grid.
type Grid struct {
	Cells   []bool
	Columns int
}

// View renders the grid row by row.
func (g Grid) View() string {
	cols := g.Columns
	if cols <= 0 {
		cols = 20
	}

	var b strings.Builder
	for i, alive := range g.Cells {
		if i > 0 && i%cols == 0 {
			b.WriteByte('\n')
		}
		if alive {
			b.WriteString("▓")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

// LiveFraction reports the share of true cells, for a caption next to
// the map.
func (g Grid) LiveFraction() float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	n := 0
	for _, alive := range g.Cells {
		if alive {
			n++
		}
	}
	return float64(n) / float64(len(g.Cells))
}
