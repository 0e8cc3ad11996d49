// Package astar defines options, results and sentinel errors for the
// grid A* search.
package astar

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/fieldcover/grid"
)

// Sentinel errors returned by FindPath and Search.
var (
	// ErrNilGrid indicates a nil *grid.Grid was passed.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrOutOfBounds indicates start or end lies outside the grid.
	ErrOutOfBounds = errors.New("astar: endpoint out of bounds")

	// ErrNoPath indicates the open set was exhausted without reaching end.
	// A start equal to end is never reported as ErrNoPath.
	ErrNoPath = errors.New("astar: no path between endpoints")

	// ErrExpansionLimit indicates the search hit Options.MaxExpansions.
	ErrExpansionLimit = errors.New("astar: expansion limit reached")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// Frontier selects the open-set implementation.
type Frontier int

const (
	// FrontierLinear scans the open list for the minimum f on every
	// extraction. O(open) per pop; fine for fields up to a few thousand cells.
	FrontierLinear Frontier = iota

	// FrontierHeap keeps the open set in a binary min-heap ordered by
	// (f, insertion sequence). Extraction order matches FrontierLinear.
	FrontierHeap
)

// String returns "linear" or "heap".
func (f Frontier) String() string {
	switch f {
	case FrontierLinear:
		return "linear"
	case FrontierHeap:
		return "heap"
	default:
		return fmt.Sprintf("Frontier(%d)", int(f))
	}
}

// Options configures a search.
//
// Overrides     – per-cell states that shadow the grid's own states for this
//
//	search only. The grid is never written to.
//
// Endpoints     – when true, start and end are treated as Start/End markers,
//
//	so either may sit on an obstacle cell.
//
// Frontier      – open-set implementation (default FrontierLinear).
// MaxExpansions – stop after this many node extractions; 0 disables the cap.
// Ctx           – checked periodically; cancellation aborts the search.
type Options struct {
	Overrides     map[grid.Point]grid.CellState
	Endpoints     bool
	Frontier      Frontier
	MaxExpansions int
	Ctx           context.Context

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns Options with no overrides, a linear frontier,
// no expansion cap and context.Background().
func DefaultOptions() Options {
	return Options{
		Frontier: FrontierLinear,
		Ctx:      context.Background(),
	}
}

// WithOverrides shadows grid states for the listed cells. Later calls merge
// into earlier ones.
func WithOverrides(overrides map[grid.Point]grid.CellState) Option {
	return func(o *Options) {
		if len(overrides) == 0 {
			return
		}
		if o.Overrides == nil {
			o.Overrides = make(map[grid.Point]grid.CellState, len(overrides))
		}
		for p, s := range overrides {
			o.Overrides[p] = s
		}
	}
}

// WithEndpoints marks start as Start and end as End for the search, making
// both traversable whatever their state in the grid.
func WithEndpoints() Option {
	return func(o *Options) {
		o.Endpoints = true
	}
}

// WithFrontier selects the open-set implementation.
func WithFrontier(f Frontier) Option {
	return func(o *Options) {
		switch f {
		case FrontierLinear, FrontierHeap:
			o.Frontier = f
		default:
			o.err = fmt.Errorf("%w: unknown frontier %d", ErrOptionViolation, int(f))
		}
	}
}

// WithMaxExpansions caps the number of node extractions.
//
//	n > 0: limit to n
//	n == 0: no limit
//	n < 0: ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithContext sets a context for cancellation and deadlines.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// Result is the outcome of a successful search.
//
// Path     – start … end inclusive; a single cell when start == end.
// Cost     – number of unit steps, len(Path)-1.
// Expanded – number of nodes extracted from the open set.
type Result struct {
	Path     []grid.Point
	Cost     int
	Expanded int
}
