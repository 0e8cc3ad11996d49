package coverage

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fieldcover/astar"
	"github.com/katalvlaran/fieldcover/grid"
)

// Plan builds a route from start that visits every free cell it can reach,
// sweeping columns back and forth and using A* connectors to move between
// sweep segments.
//
// Preconditions and validation (in order, all wrapped in ErrInvalidInput):
//  1. Options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGrid).
//  3. start must be in bounds (ErrStartOutOfBounds) and free (ErrStartBlocked).
//  4. A WithEnd cell must be in bounds (ErrEndOutOfBounds) and free (ErrEndBlocked).
//
// Behaviour:
//  1. Decompose the field into sweep segments.
//  2. Repeatedly pick the unvisited cell nearest to the current position
//     (Manhattan distance, first minimum in column-major segment order wins)
//     and take its segment.
//  3. Connect to that entry cell with A*. A segment with no connector, or
//     whose connector touches an obstacle, is dropped and the loop goes on.
//  4. Append the connector (minus its first cell), then the segment from the
//     entry to its far end, skipping cells already visited. If nothing past
//     the entry was left, walk back toward the segment head instead.
//  5. Drop the segment once all its cells are visited. Under WithSinglePass
//     it is dropped after the first sweep and never walked backwards.
//  6. Stop when nothing is left or after IterationFactor×segments iterations.
//  7. Filter obstacle cells out of the route, then drive to the end cell if
//     one was requested.
//
// Errors after validation come with a non-nil Result: ErrEndUnreachable when
// the final leg fails, and a wrapped context error when Ctx is done.
//
// Plan never writes to g; concurrent plans over the same grid are safe while
// nobody else mutates it.
func Plan(g *grid.Grid, start grid.Point, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrNilGrid)
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: %w: %s in %dx%d", ErrInvalidInput, ErrStartOutOfBounds, start, g.Rows(), g.Cols())
	}
	if !g.Passable(start) {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrStartBlocked, start)
	}
	if cfg.End != nil {
		if !g.InBounds(*cfg.End) {
			return nil, fmt.Errorf("%w: %w: %s in %dx%d", ErrInvalidInput, ErrEndOutOfBounds, *cfg.End, g.Rows(), g.Cols())
		}
		if !g.Passable(*cfg.End) {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrEndBlocked, *cfg.End)
		}
	}

	p := &planner{
		g:       g,
		cfg:     cfg,
		visited: make([]bool, g.Size()),
		current: start,
	}
	return p.run(start)
}

// PlanBinary is Plan over a 0/1 occupancy matrix (0 = free, 1 = obstacle).
// Grid construction errors are wrapped in ErrInvalidInput.
func PlanBinary(m [][]int, start grid.Point, opts ...Option) (*Result, error) {
	g, err := grid.FromBinary(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return Plan(g, start, opts...)
}

// planner holds the mutable state of one planning call.
type planner struct {
	g       *grid.Grid
	cfg     Options
	visited []bool
	route   []grid.Point
	current grid.Point
}

func (p *planner) run(start grid.Point) (*Result, error) {
	segs := Decompose(p.g)
	res := &Result{Segments: len(segs)}

	p.route = append(p.route, start)
	p.visited[p.g.Index(start)] = true

	if len(segs) == 0 {
		res.Route = p.route
		return p.finish(res)
	}

	remaining := make([]Segment, len(segs))
	copy(remaining, segs)
	maxIterations := p.cfg.IterationFactor * len(segs)

	for len(remaining) > 0 && res.Iterations < maxIterations {
		if err := p.cfg.Ctx.Err(); err != nil {
			return p.abort(res, err)
		}
		res.Iterations++

		si, entry, ok := p.nearest(remaining)
		if !ok {
			break
		}
		seg := remaining[si]

		if p.current != entry {
			conn, err := p.connect(p.current, entry)
			if err != nil {
				if ctxErr := p.cfg.Ctx.Err(); ctxErr != nil {
					return p.abort(res, ctxErr)
				}
				res.Skipped++
				remaining = removeSegment(remaining, si)
				continue
			}
			if bad, unsafe := p.unsafeCell(conn); unsafe {
				p.cfg.Logger.Printf("op=coverage.connect from=%s to=%s err=unsafe connector crosses obstacle at %s",
					p.current, entry, bad)
				res.Unsafe++
				res.Skipped++
				remaining = removeSegment(remaining, si)
				continue
			}
			for _, c := range conn[1:] {
				p.route = append(p.route, c)
				if p.g.Free(c) {
					p.visited[p.g.Index(c)] = true
				}
			}
			p.current = entry
		}

		p.sweep(seg, entry)
		if p.cfg.SinglePass || !p.pending(seg) {
			remaining = removeSegment(remaining, si)
		}
	}

	if len(remaining) > 0 && res.Iterations >= maxIterations {
		if _, _, ok := p.nearest(remaining); ok {
			res.Truncated = true
			p.cfg.Logger.Printf("op=coverage.plan iterations=%d segments=%d remaining=%d msg=iteration bound reached",
				res.Iterations, res.Segments, len(remaining))
		}
	}

	res.Route = p.safeRoute()
	return p.finish(res)
}

// nearest finds the unvisited segment cell closest to the current position.
// Strict comparison keeps the first minimum in generation order.
func (p *planner) nearest(remaining []Segment) (int, grid.Point, bool) {
	best := math.MaxInt
	bestSeg := -1
	var entry grid.Point
	for i, seg := range remaining {
		for _, c := range seg.Cells {
			if p.visited[p.g.Index(c)] {
				continue
			}
			if d := grid.Manhattan(p.current, c); d < best {
				best = d
				bestSeg = i
				entry = c
			}
		}
	}
	return bestSeg, entry, bestSeg >= 0
}

// connect finds a connector path with from/to marked as endpoints.
func (p *planner) connect(from, to grid.Point) ([]grid.Point, error) {
	opts := make([]astar.Option, 0, len(p.cfg.PathOptions)+2)
	opts = append(opts, p.cfg.PathOptions...)
	opts = append(opts, astar.WithEndpoints(), astar.WithContext(p.cfg.Ctx))
	return astar.FindPath(p.g, from, to, opts...)
}

// unsafeCell returns the first connector cell the grid marks as obstacle.
func (p *planner) unsafeCell(conn []grid.Point) (grid.Point, bool) {
	for _, c := range conn {
		if !p.g.Free(c) {
			return c, true
		}
	}
	return grid.Point{}, false
}

// sweep walks seg from entry to its far end, appending unvisited cells.
// When nothing past the entry is left it walks back toward the head instead,
// unless SinglePass is set.
func (p *planner) sweep(seg Segment, entry grid.Point) {
	at := seg.indexOf(entry)
	if at < 0 {
		return
	}
	if p.walk(seg, seg.Cells[at:]) > 0 || p.cfg.SinglePass {
		return
	}
	back := make([]grid.Point, 0, at+1)
	for i := at; i >= 0; i-- {
		back = append(back, seg.Cells[i])
	}
	p.walk(seg, back)
}

// walk appends the unvisited cells of run in order and returns how many it
// added. It stops at the first obstacle.
func (p *planner) walk(seg Segment, run []grid.Point) int {
	added := 0
	for _, c := range run {
		if !p.g.Free(c) {
			p.cfg.Logger.Printf("op=coverage.sweep column=%d cell=%s err=segment contains obstacle", seg.Column, c)
			break
		}
		if p.visited[p.g.Index(c)] {
			continue
		}
		p.route = append(p.route, c)
		p.visited[p.g.Index(c)] = true
		p.current = c
		added++
	}
	return added
}

// pending reports whether seg still has unvisited cells.
func (p *planner) pending(seg Segment) bool {
	for _, c := range seg.Cells {
		if !p.visited[p.g.Index(c)] {
			return true
		}
	}
	return false
}

// safeRoute drops any obstacle cell from the route.
func (p *planner) safeRoute() []grid.Point {
	out := p.route[:0:0]
	for _, c := range p.route {
		if p.g.Free(c) {
			out = append(out, c)
		}
	}
	return out
}

// finish runs the optional end leg.
func (p *planner) finish(res *Result) (*Result, error) {
	if p.cfg.End == nil {
		return res, nil
	}
	end := *p.cfg.End
	if p.current == end {
		res.EndReached = true
		return res, nil
	}

	conn, err := p.connect(p.current, end)
	if err == nil {
		if bad, unsafe := p.unsafeCell(conn); unsafe {
			res.Unsafe++
			err = fmt.Errorf("connector crosses obstacle at %s", bad)
		}
	}
	if err != nil {
		p.cfg.Logger.Printf("op=coverage.end from=%s to=%s err=%v", p.current, end, err)
		return res, fmt.Errorf("%w: %s to %s: %w", ErrEndUnreachable, p.current, end, err)
	}

	res.Route = append(res.Route, conn[1:]...)
	p.current = end
	res.EndReached = true
	return res, nil
}

// abort returns the partial route when the context is done.
func (p *planner) abort(res *Result, err error) (*Result, error) {
	res.Truncated = true
	res.Route = p.safeRoute()
	p.cfg.Logger.Printf("op=coverage.plan iterations=%d err=%v", res.Iterations, err)
	return res, fmt.Errorf("coverage: planning aborted: %w", err)
}

// removeSegment deletes remaining[i], keeping generation order.
func removeSegment(remaining []Segment, i int) []Segment {
	return append(remaining[:i], remaining[i+1:]...)
}
