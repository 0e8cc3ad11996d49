package grid

// ConnectedComponents finds all 4-connected regions of traversable cells.
// Components are returned in row-major discovery order; cells inside a
// component are in BFS order from its first cell.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]Point {
	seen := make([]bool, len(g.cells))
	var comps [][]Point
	for i, s := range g.cells {
		if !s.Passable() || seen[i] {
			continue
		}
		comps = append(comps, g.flood(i, seen))
	}
	return comps
}

// ReachableFrom returns every traversable cell 4-connected to p, p included.
// Returns nil if p is out of bounds or an obstacle.
func (g *Grid) ReachableFrom(p Point) []Point {
	if !g.Free(p) {
		return nil
	}
	return g.flood(g.index(p), make([]bool, len(g.cells)))
}

// flood runs a BFS over passable cells from index i0, marking seen.
func (g *Grid) flood(i0 int, seen []bool) []Point {
	queue := []int{i0}
	seen[i0] = true
	var comp []Point
	for qi := 0; qi < len(queue); qi++ {
		u := g.Coordinate(queue[qi])
		comp = append(comp, u)
		for _, d := range neighborOffsets {
			v := Point{Row: u.Row + d.Row, Col: u.Col + d.Col}
			if !g.InBounds(v) {
				continue
			}
			vi := g.index(v)
			if seen[vi] || !g.cells[vi].Passable() {
				continue
			}
			seen[vi] = true
			queue = append(queue, vi)
		}
	}
	return comp
}
