package coverage

import "github.com/katalvlaran/fieldcover/grid"

// Stats summarises a route.
//
// TotalDistance   – sum of Manhattan steps between consecutive cells.
// CoveredCells    – distinct cells on the route.
// CoveragePercent – CoveredCells / traversable cells × 100; zero until
//
//	WithTotal supplies the denominator.
type Stats struct {
	TotalDistance   int     `json:"totalDistance" msgpack:"totalDistance"`
	CoveredCells    int     `json:"coveredCells" msgpack:"coveredCells"`
	CoveragePercent float64 `json:"coveragePercent" msgpack:"coveragePercent"`
}

// ComputeStats measures route. The percentage is left at zero because the
// route alone does not know how many cells the field has.
func ComputeStats(route []grid.Point) Stats {
	var s Stats
	for i := 1; i < len(route); i++ {
		s.TotalDistance += grid.Manhattan(route[i-1], route[i])
	}
	seen := make(map[grid.Point]struct{}, len(route))
	for _, p := range route {
		seen[p] = struct{}{}
	}
	s.CoveredCells = len(seen)
	return s
}

// WithTotal returns s with CoveragePercent computed against totalFree
// traversable cells. A non-positive total leaves the percentage at zero.
func (s Stats) WithTotal(totalFree int) Stats {
	if totalFree > 0 {
		s.CoveragePercent = float64(s.CoveredCells) * 100 / float64(totalFree)
	}
	return s
}
