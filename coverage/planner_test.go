package coverage_test

import (
	"bytes"
	"context"
	"log"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fieldcover/astar"
	"github.com/katalvlaran/fieldcover/coverage"
	"github.com/katalvlaran/fieldcover/grid"
)

// assertSafe checks route starts at start and never touches an obstacle.
func assertSafe(t *testing.T, g *grid.Grid, start grid.Point, route []grid.Point) {
	t.Helper()
	require.NotEmpty(t, route)
	assert.Equal(t, start, route[0])
	for i, p := range route {
		assert.True(t, g.Free(p), "route[%d] = %s is not free", i, p)
	}
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestPlan_Validation(t *testing.T) {
	g := mustParse(t, `
		#..
		...
	`)
	tests := []struct {
		name  string
		g     *grid.Grid
		start grid.Point
		opts  []coverage.Option
		want  error
	}{
		{"nil grid", nil, grid.Point{}, nil, coverage.ErrNilGrid},
		{"start out of bounds", g, grid.Point{Row: 2, Col: 0}, nil, coverage.ErrStartOutOfBounds},
		{"start negative", g, grid.Point{Row: 0, Col: -1}, nil, coverage.ErrStartOutOfBounds},
		{"start on obstacle", g, grid.Point{Row: 0, Col: 0}, nil, coverage.ErrStartBlocked},
		{"end out of bounds", g, grid.Point{Row: 1, Col: 0},
			[]coverage.Option{coverage.WithEnd(grid.Point{Row: 0, Col: 9})}, coverage.ErrEndOutOfBounds},
		{"end on obstacle", g, grid.Point{Row: 1, Col: 0},
			[]coverage.Option{coverage.WithEnd(grid.Point{Row: 0, Col: 0})}, coverage.ErrEndBlocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := coverage.Plan(tt.g, tt.start, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, coverage.ErrInvalidInput)
		})
	}
}

func TestPlan_BadOptions(t *testing.T) {
	g, err := grid.New(2, 2)
	require.NoError(t, err)

	_, err = coverage.Plan(g, grid.Point{}, coverage.WithIterationFactor(0))
	assert.ErrorIs(t, err, coverage.ErrOptionViolation)
}

func TestPlanBinary(t *testing.T) {
	res, err := coverage.PlanBinary([][]int{
		{0, 0},
		{1, 0},
	}, grid.Point{})
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 0, 1, 1, 1), res.Route)

	_, err = coverage.PlanBinary([][]int{{2}}, grid.Point{})
	assert.ErrorIs(t, err, coverage.ErrInvalidInput)
	assert.ErrorIs(t, err, grid.ErrBadCellValue)
}

// ------------------------------------------------------------------------
// 2. Routes
// ------------------------------------------------------------------------

// TestPlan_OpenField3x3 is the plain boustrophedon: down, up, down.
func TestPlan_OpenField3x3(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)

	res, err := coverage.Plan(g, grid.Point{})
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 1, 0, 2, 0, 2, 1, 1, 1, 0, 1, 0, 2, 1, 2, 2, 2), res.Route)
	assert.Equal(t, 3, res.Segments)
	assert.Zero(t, res.Skipped)
	assert.False(t, res.Truncated)
}

// TestPlan_OpenFieldComplete covers every cell exactly once on open fields
// when starting in a corner.
func TestPlan_OpenFieldComplete(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 6}, {6, 1}, {4, 4}, {5, 7}, {8, 3}} {
		g, err := grid.New(size[0], size[1])
		require.NoError(t, err)

		res, err := coverage.Plan(g, grid.Point{})
		require.NoError(t, err)
		assert.Len(t, res.Route, size[0]*size[1])
		for i := 1; i < len(res.Route); i++ {
			assert.Equal(t, 1, grid.Manhattan(res.Route[i-1], res.Route[i]), "%v: step %d", size, i)
		}
		st := res.Stats(g)
		assert.Equal(t, size[0]*size[1], st.CoveredCells)
		assert.InDelta(t, 100.0, st.CoveragePercent, 1e-9)
	}
}

// TestPlan_OpenFieldAnyStart checks full coverage from every start cell.
func TestPlan_OpenFieldAnyStart(t *testing.T) {
	g, err := grid.New(4, 5)
	require.NoError(t, err)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			start := grid.Point{Row: r, Col: c}
			res, err := coverage.Plan(g, start)
			require.NoError(t, err, "start %s", start)
			assertSafe(t, g, start, res.Route)
			assert.False(t, res.Truncated, "start %s", start)
			assert.InDelta(t, 100.0, res.Stats(g).CoveragePercent, 1e-9, "start %s", start)
		}
	}
}

// TestPlan_CentreObstacle routes around a single obstacle; the last cell is
// reached through a connector along the right-hand column.
func TestPlan_CentreObstacle(t *testing.T) {
	g := mustParse(t, `
		...
		.#.
		...
	`)
	res, err := coverage.Plan(g, grid.Point{})
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 1, 0, 2, 0, 2, 1, 2, 2, 1, 2, 0, 2, 0, 1), res.Route)

	st := res.Stats(g)
	assert.Equal(t, 7, st.TotalDistance)
	assert.Equal(t, 8, st.CoveredCells)
	assert.InDelta(t, 100.0, st.CoveragePercent, 1e-9)
}

// TestPlan_DisconnectedHalf skips the segments behind a full-height wall.
func TestPlan_DisconnectedHalf(t *testing.T) {
	g := mustParse(t, `
		..#..
		..#..
		..#..
		..#..
		..#..
	`)
	res, err := coverage.Plan(g, grid.Point{})
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 4, 1, 3, 1, 2, 1, 1, 1, 0, 1), res.Route)
	assert.Equal(t, 4, res.Segments)
	assert.Equal(t, 2, res.Skipped)
	assert.Zero(t, res.Unsafe)
	assert.False(t, res.Truncated)
	assert.InDelta(t, 50.0, res.Stats(g).CoveragePercent, 1e-9)
}

// TestPlan_StartMidSegment enters column 0 in the middle; its top cell is
// picked up later.
func TestPlan_StartMidSegment(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	start := grid.Point{Row: 1, Col: 1}

	res, err := coverage.Plan(g, start)
	require.NoError(t, err)
	assert.Equal(t, pts(1, 1, 1, 0, 2, 0, 2, 1, 0, 1, 0, 0, 0, 1, 0, 2, 1, 2, 2, 2), res.Route)
	assert.Equal(t, 4, res.Iterations)
	assert.Equal(t, 9, res.Stats(g).CoveredCells)

	res, err = coverage.Plan(g, start, coverage.WithSinglePass())
	require.NoError(t, err)
	assert.Equal(t, pts(1, 1, 1, 0, 2, 0, 2, 1, 0, 1, 0, 2, 1, 2, 2, 2), res.Route)
	assert.NotContains(t, res.Route, grid.Point{Row: 0, Col: 0})
	assert.Equal(t, 8, res.Stats(g).CoveredCells)
}

// TestPlan_WalkBack enters a downward column from below; the sweep turns
// back up instead of stopping.
func TestPlan_WalkBack(t *testing.T) {
	g := mustParse(t, `
		.
		.
		.
		.
		.
	`)
	start := grid.Point{Row: 4, Col: 0}

	res, err := coverage.Plan(g, start)
	require.NoError(t, err)
	assert.Equal(t, pts(4, 0, 3, 0, 2, 0, 1, 0, 0, 0), res.Route)

	res, err = coverage.Plan(g, start, coverage.WithSinglePass())
	require.NoError(t, err)
	assert.Equal(t, pts(4, 0, 3, 0), res.Route)
	assert.InDelta(t, 40.0, res.Stats(g).CoveragePercent, 1e-9)
}

// TestPlan_RandomFields checks safety and completeness over seeded random
// fields: the route covers exactly the cells reachable from start.
func TestPlan_RandomFields(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 40; n++ {
		m := make([][]int, 6+r.Intn(6))
		cols := 6 + r.Intn(8)
		for y := range m {
			m[y] = make([]int, cols)
			for x := range m[y] {
				if r.Intn(100) < 25 {
					m[y][x] = 1
				}
			}
		}
		m[0][0] = 0
		g, err := grid.FromBinary(m)
		require.NoError(t, err)

		start := grid.Point{}
		res, err := coverage.Plan(g, start, coverage.WithIterationFactor(100))
		require.NoError(t, err, "field %d", n)
		assertSafe(t, g, start, res.Route)
		assert.False(t, res.Truncated, "field %d", n)

		covered := make(map[grid.Point]bool)
		for _, p := range res.Route {
			covered[p] = true
		}
		reach := g.ReachableFrom(start)
		assert.Len(t, covered, len(reach), "field %d", n)
		for _, p := range reach {
			assert.True(t, covered[p], "field %d: reachable %s not covered", n, p)
		}
	}
}

// ------------------------------------------------------------------------
// 3. End leg
// ------------------------------------------------------------------------

func TestPlan_EndLeg(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	end := grid.Point{Row: 0, Col: 0}

	res, err := coverage.Plan(g, grid.Point{}, coverage.WithEnd(end))
	require.NoError(t, err)
	assert.True(t, res.EndReached)
	assert.Len(t, res.Route, 13)
	assert.Equal(t, end, res.Route[len(res.Route)-1])
	for i := 10; i < len(res.Route); i++ {
		assert.Equal(t, 1, grid.Manhattan(res.Route[i-1], res.Route[i]))
	}
}

func TestPlan_EndIsLastCell(t *testing.T) {
	g := mustParse(t, "...")
	res, err := coverage.Plan(g, grid.Point{}, coverage.WithEnd(grid.Point{Row: 0, Col: 2}))
	require.NoError(t, err)
	assert.True(t, res.EndReached)
	assert.Equal(t, pts(0, 0, 0, 1, 0, 2), res.Route)
}

func TestPlan_EndUnreachable(t *testing.T) {
	g := mustParse(t, `
		..#..
		..#..
		..#..
		..#..
		..#..
	`)
	res, err := coverage.Plan(g, grid.Point{}, coverage.WithEnd(grid.Point{Row: 0, Col: 4}))
	require.Error(t, err)
	assert.ErrorIs(t, err, coverage.ErrEndUnreachable)
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.NotErrorIs(t, err, coverage.ErrInvalidInput)

	require.NotNil(t, res)
	assert.False(t, res.EndReached)
	assert.Len(t, res.Route, 10)
}

// ------------------------------------------------------------------------
// 4. Safety, bounds and cancellation
// ------------------------------------------------------------------------

// TestPlan_UnsafeConnector feeds the connector search an override that
// opens a wall cell; the planner must refuse the resulting path.
func TestPlan_UnsafeConnector(t *testing.T) {
	g := mustParse(t, `
		.#.
		.#.
		.#.
	`)
	var buf bytes.Buffer
	res, err := coverage.Plan(g, grid.Point{},
		coverage.WithPathOptions(astar.WithOverrides(map[grid.Point]grid.CellState{
			{Row: 2, Col: 1}: grid.Empty,
		})),
		coverage.WithLogger(log.New(&buf, "", 0)),
	)
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 1, 0, 2, 0), res.Route)
	assert.Equal(t, 1, res.Unsafe)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, buf.String(), "op=coverage.connect")
	assert.Contains(t, buf.String(), "obstacle at 2,1")
}

func TestPlan_IterationBound(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	var buf bytes.Buffer

	res, err := coverage.Plan(g, grid.Point{Row: 1, Col: 1},
		coverage.WithIterationFactor(1),
		coverage.WithLogger(log.New(&buf, "", 0)),
	)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, pts(1, 1, 1, 0, 2, 0, 2, 1, 0, 1, 0, 0), res.Route)
	assert.Contains(t, buf.String(), "iteration bound reached")
}

func TestPlan_Cancelled(t *testing.T) {
	g, err := grid.New(4, 4)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := coverage.Plan(g, grid.Point{}, coverage.WithContext(ctx))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.True(t, res.Truncated)
	assert.Equal(t, pts(0, 0), res.Route)
}

// ------------------------------------------------------------------------
// 5. Determinism
// ------------------------------------------------------------------------

func TestPlan_Deterministic(t *testing.T) {
	g := mustParse(t, `
		...#....
		.#...#..
		...#..#.
		.#....#.
	`)
	first, err := coverage.Plan(g, grid.Point{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := coverage.Plan(g, grid.Point{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	heap, err := coverage.Plan(g, grid.Point{}, coverage.WithFrontier(astar.FrontierHeap))
	require.NoError(t, err)
	assert.Equal(t, first.Route, heap.Route)
}

func TestPlan_GridUntouched(t *testing.T) {
	g := mustParse(t, `
		S..
		.#.
		..E
	`)
	before := g.String()
	_, err := coverage.Plan(g, grid.Point{}, coverage.WithEnd(grid.Point{Row: 2, Col: 2}))
	require.NoError(t, err)
	assert.Equal(t, before, g.String())
}
