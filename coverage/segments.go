package coverage

import "github.com/katalvlaran/fieldcover/grid"

// Decompose splits g into vertical sweep segments. Column c is scanned
// top→bottom when c is even and bottom→top when odd; an obstacle closes the
// current run, so one column may yield several segments. Segments come out
// in column-major order, which is also the planner's tie-break order.
//
// Complexity: O(W×H) time and memory.
func Decompose(g *grid.Grid) []Segment {
	var segs []Segment
	rows := g.Rows()
	for c := 0; c < g.Cols(); c++ {
		dir := Down
		if c%2 == 1 {
			dir = Up
		}
		var run []grid.Point
		for i := 0; i < rows; i++ {
			r := i
			if dir == Up {
				r = rows - 1 - i
			}
			p := grid.Point{Row: r, Col: c}
			if g.Passable(p) {
				run = append(run, p)
				continue
			}
			if len(run) > 0 {
				segs = append(segs, Segment{Column: c, Direction: dir, Cells: run})
				run = nil
			}
		}
		if len(run) > 0 {
			segs = append(segs, Segment{Column: c, Direction: dir, Cells: run})
		}
	}
	return segs
}
