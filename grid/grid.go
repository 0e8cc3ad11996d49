package grid

import "fmt"

// New returns a rows×cols grid with every cell Empty.
// Returns ErrEmptyGrid if either dimension is below 1.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyGrid
	}
	return &Grid{rows: rows, cols: cols, cells: make([]CellState, rows*cols)}, nil
}

// FromStates builds a Grid from a non-empty, rectangular matrix of states.
// The input is deep-copied.
// Complexity: O(W×H) time and memory.
func FromStates(states [][]CellState) (*Grid, error) {
	if len(states) == 0 || len(states[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(states), len(states[0])
	for _, row := range states {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g := &Grid{rows: h, cols: w, cells: make([]CellState, h*w)}
	for r := 0; r < h; r++ {
		copy(g.cells[r*w:(r+1)*w], states[r])
	}
	return g, nil
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies within the grid boundaries.
func (g *Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the state at p. p must be in bounds.
func (g *Grid) At(p Point) CellState {
	return g.cells[g.index(p)]
}

// Set overwrites the state at p.
func (g *Grid) Set(p Point, s CellState) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s in %dx%d", ErrOutOfBounds, p, g.rows, g.cols)
	}
	g.cells[g.index(p)] = s
	return nil
}

// Passable reports whether the in-bounds cell p is not an obstacle.
func (g *Grid) Passable(p Point) bool {
	return g.At(p).Passable()
}

// Free reports whether p is in bounds and not an obstacle.
func (g *Grid) Free(p Point) bool {
	return g.InBounds(p) && g.At(p).Passable()
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, cells: make([]CellState, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// FreeCount returns the number of traversable cells.
func (g *Grid) FreeCount() int {
	n := 0
	for _, s := range g.cells {
		if s.Passable() {
			n++
		}
	}
	return n
}

// Neighbors returns the in-bounds 4-neighbours of p in the order
// up, down, left, right. Obstacles are not filtered.
func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		q := Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.InBounds(q) {
			out = append(out, q)
		}
	}
	return out
}

// Find returns the first cell, in row-major order, whose state is s.
func (g *Grid) Find(s CellState) (Point, bool) {
	for i, c := range g.cells {
		if c == s {
			return g.Coordinate(i), true
		}
	}
	return Point{}, false
}

// MarkRoute returns a copy of g where every Empty cell on route is labelled
// Path. Other states, and route points outside the grid, are left alone.
func (g *Grid) MarkRoute(route []Point) *Grid {
	c := g.Clone()
	for _, p := range route {
		if c.InBounds(p) && c.At(p) == Empty {
			c.cells[c.index(p)] = Path
		}
	}
	return c
}

// Index maps p to its row-major index. p must be in bounds.
func (g *Grid) Index(p Point) int {
	return g.index(p)
}

// Coordinate converts a row-major index back to a Point.
func (g *Grid) Coordinate(idx int) Point {
	return Point{Row: idx / g.cols, Col: idx % g.cols}
}

// Size returns rows×cols.
func (g *Grid) Size() int {
	return len(g.cells)
}

func (g *Grid) index(p Point) int {
	return p.Row*g.cols + p.Col
}
