package grid

import (
	"fmt"
	"strings"
)

// Binary matrix values.
const (
	BinaryFree     = 0
	BinaryObstacle = 1
)

// FromBinary builds a Grid from a 0/1 occupancy matrix (0 = free, 1 = obstacle).
// Any other value yields ErrBadCellValue.
// Complexity: O(W×H).
func FromBinary(m [][]int) (*Grid, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(m), len(m[0])
	g := &Grid{rows: h, cols: w, cells: make([]CellState, h*w)}
	for r, row := range m {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for c, v := range row {
			switch v {
			case BinaryFree:
				// zero value is Empty
			case BinaryObstacle:
				g.cells[r*w+c] = Obstacle
			default:
				return nil, fmt.Errorf("%w: %d at %d,%d", ErrBadCellValue, v, r, c)
			}
		}
	}
	return g, nil
}

// Binary returns the 0/1 occupancy matrix of g. All traversable states map to 0.
func (g *Grid) Binary() [][]int {
	out := make([][]int, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]int, g.cols)
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == Obstacle {
				row[c] = BinaryObstacle
			}
		}
		out[r] = row
	}
	return out
}

// States returns a deep copy of the typed state matrix.
func (g *Grid) States() [][]CellState {
	out := make([][]CellState, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]CellState, g.cols)
		copy(row, g.cells[r*g.cols:(r+1)*g.cols])
		out[r] = row
	}
	return out
}

// ParseText builds a Grid from newline-separated rows of state runes:
//
//	. empty   # obstacle   S start   E end   M machine   * path
//
// Blank lines and surrounding whitespace are ignored.
func ParseText(s string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return ParseRows(lines)
}

// ParseRows is ParseText for pre-split rows.
func ParseRows(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	states := make([][]CellState, len(rows))
	for r, line := range rows {
		row := make([]CellState, 0, len(line))
		for c, ch := range line {
			s, ok := stateFromRune(ch)
			if !ok {
				return nil, fmt.Errorf("%w: %q at %d,%d", ErrBadCellValue, ch, r, c)
			}
			row = append(row, s)
		}
		states[r] = row
	}
	return FromStates(states)
}

// String renders g in the ParseText format, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			b.WriteRune(g.cells[r*g.cols+c].Rune())
		}
	}
	return b.String()
}
