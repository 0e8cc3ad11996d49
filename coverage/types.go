package coverage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/katalvlaran/fieldcover/astar"
	"github.com/katalvlaran/fieldcover/grid"
)

// Sentinel errors returned by Plan and PlanBinary.
var (
	// ErrInvalidInput wraps every fail-fast validation error below, so callers
	// can test for the whole family with errors.Is.
	ErrInvalidInput = errors.New("coverage: invalid input")

	// ErrNilGrid indicates a nil *grid.Grid was passed.
	ErrNilGrid = errors.New("coverage: grid is nil")

	// ErrStartOutOfBounds indicates the start cell is outside the grid.
	ErrStartOutOfBounds = errors.New("coverage: start out of bounds")

	// ErrStartBlocked indicates the start cell is an obstacle.
	ErrStartBlocked = errors.New("coverage: start is an obstacle")

	// ErrEndOutOfBounds indicates the requested end cell is outside the grid.
	ErrEndOutOfBounds = errors.New("coverage: end out of bounds")

	// ErrEndBlocked indicates the requested end cell is an obstacle.
	ErrEndBlocked = errors.New("coverage: end is an obstacle")

	// ErrEndUnreachable indicates coverage finished but no connector from the
	// last covered cell to the requested end exists. Plan returns it together
	// with the coverage Result.
	ErrEndUnreachable = errors.New("coverage: end unreachable from last covered cell")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("coverage: invalid option supplied")
)

// DefaultIterationFactor bounds the sequencing loop to 3×segment count.
const DefaultIterationFactor = 3

// Direction is the sweep direction of a column.
type Direction int

const (
	// Down scans rows top to bottom (even columns).
	Down Direction = iota
	// Up scans rows bottom to top (odd columns).
	Up
)

// String returns "down" or "up".
func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Segment is a maximal run of free cells along one column, listed in sweep
// order. Segments are built once per plan and never mutated.
type Segment struct {
	Column    int
	Direction Direction
	Cells     []grid.Point
}

// indexOf returns the position of p in s.Cells, or -1.
func (s Segment) indexOf(p grid.Point) int {
	for i, c := range s.Cells {
		if c == p {
			return i
		}
	}
	return -1
}

// Options configures a planning call.
//
// End             – optional cell to drive to once coverage is done.
// IterationFactor – the sequencing loop runs at most IterationFactor×segments
//
//	times (default 3); hitting it marks the Result truncated.
//
// SinglePass      – drop a segment after its first forward sweep even if
//
//	cells before its entry were never visited. By default a segment stays
//	in the pool until all its cells are visited.
//
// PathOptions     – forwarded to every connector search (frontier, caps).
// Ctx             – cancellation and deadline for the whole call.
// Logger          – receives invariant violations and truncation notices.
type Options struct {
	End             *grid.Point
	IterationFactor int
	SinglePass      bool
	PathOptions     []astar.Option
	Ctx             context.Context
	Logger          *log.Logger

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring Plan.
type Option func(*Options)

// DefaultOptions returns Options with no end point, the default iteration
// factor, context.Background() and a discarding logger.
func DefaultOptions() Options {
	return Options{
		IterationFactor: DefaultIterationFactor,
		Ctx:             context.Background(),
		Logger:          log.New(io.Discard, "", 0),
	}
}

// WithEnd asks the planner to finish at p.
func WithEnd(p grid.Point) Option {
	return func(o *Options) {
		o.End = &p
	}
}

// WithIterationFactor overrides the sequencing bound multiplier. k must be ≥ 1.
func WithIterationFactor(k int) Option {
	return func(o *Options) {
		if k < 1 {
			o.err = fmt.Errorf("%w: IterationFactor must be ≥ 1 (%d)", ErrOptionViolation, k)
			return
		}
		o.IterationFactor = k
	}
}

// WithSinglePass sweeps every segment exactly once, from the entry cell
// to its far end, and then drops it.
func WithSinglePass() Option {
	return func(o *Options) {
		o.SinglePass = true
	}
}

// WithPathOptions appends options for the connector searches.
func WithPathOptions(opts ...astar.Option) Option {
	return func(o *Options) {
		o.PathOptions = append(o.PathOptions, opts...)
	}
}

// WithFrontier selects the open-set implementation of connector searches.
func WithFrontier(f astar.Frontier) Option {
	return WithPathOptions(astar.WithFrontier(f))
}

// WithContext bounds the whole call; on cancellation Plan returns the
// partial route together with the context error.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the planner's logger. A nil logger keeps the default.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result is the outcome of a planning call.
//
// Route      – ordered cells, starting at the supplied start.
// Segments   – number of sweep segments in the field.
// Iterations – sequencing-loop iterations used.
// Skipped    – segments dropped because no safe connector reached them.
// Unsafe     – connectors rejected for crossing an obstacle (a subset of Skipped).
// Truncated  – the loop stopped on its iteration bound or context while
//
//	segment cells were still unvisited; coverage may be incomplete.
//
// EndReached – the route ends on the requested end cell.
type Result struct {
	Route      []grid.Point
	Segments   int
	Iterations int
	Skipped    int
	Unsafe     int
	Truncated  bool
	EndReached bool
}

// Stats computes route statistics with the percentage taken against g's
// traversable cells.
func (r *Result) Stats(g *grid.Grid) Stats {
	return ComputeStats(r.Route).WithTotal(g.FreeCount())
}
