package astar

import (
	"fmt"

	"github.com/katalvlaran/fieldcover/grid"
)

// ctxCheckEvery is how many extractions pass between context checks.
const ctxCheckEvery = 64

// FindPath returns a minimum-step 4-connected path from start to end,
// both inclusive, avoiding obstacle cells. It is Search without the
// bookkeeping.
//
// If start == end the path is the single cell [start]. If end cannot be
// reached the error is ErrNoPath (never an empty path).
func FindPath(g *grid.Grid, start, end grid.Point, opts ...Option) ([]grid.Point, error) {
	res, err := Search(g, start, end, opts...)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search runs A* over g from start to end with unit step cost and the
// Manhattan heuristic, which is admissible and consistent on a 4-connected
// unit-cost grid, so the first time end is extracted its path is optimal.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGrid).
//  3. start and end must be in bounds (ErrOutOfBounds).
//
// The start cell is always a valid origin. Every other cell, end included,
// is entered only if its effective state is passable; the effective state
// is the WithEndpoints marker, else the WithOverrides entry, else the grid.
//
// Ties between open nodes of equal f go to the node inserted first.
//
// Complexity with FrontierLinear: O(V²) time worst case, O(V) memory,
// V = rows×cols. FrontierHeap: O(V log V) time.
func Search(g *grid.Grid, start, end grid.Point, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return Result{}, cfg.err
	}
	if g == nil {
		return Result{}, ErrNilGrid
	}
	if !g.InBounds(start) || !g.InBounds(end) {
		return Result{}, fmt.Errorf("%w: start=%s end=%s grid=%dx%d",
			ErrOutOfBounds, start, end, g.Rows(), g.Cols())
	}

	s := newSearcher(g, start, end, cfg)
	return s.run()
}

// node is one arena entry. parent indexes s.nodes; -1 marks the root.
type node struct {
	pos     grid.Point
	g, h, f int
	parent  int
	seq     int
	heapIdx int
}

// searcher holds the mutable state of a single search.
type searcher struct {
	g          *grid.Grid
	cfg        Options
	start, end grid.Point

	nodes    []node // arena; indices are stable for the whole search
	byCell   []int  // cell index → node index, -1 if never opened
	closed   []bool // cell index → extracted
	open     frontier
	expanded int
}

func newSearcher(g *grid.Grid, start, end grid.Point, cfg Options) *searcher {
	s := &searcher{
		g:      g,
		cfg:    cfg,
		start:  start,
		end:    end,
		nodes:  make([]node, 0, 64),
		byCell: make([]int, g.Size()),
		closed: make([]bool, g.Size()),
	}
	for i := range s.byCell {
		s.byCell[i] = -1
	}
	if cfg.Frontier == FrontierHeap {
		s.open = &heapFrontier{s: s}
	} else {
		s.open = &linearFrontier{s: s}
	}
	return s
}

func (s *searcher) run() (Result, error) {
	s.insert(s.start, 0, -1)

	for s.open.len() > 0 {
		if s.cfg.MaxExpansions > 0 && s.expanded >= s.cfg.MaxExpansions {
			return Result{Expanded: s.expanded}, fmt.Errorf("%w: %d extractions from %s to %s",
				ErrExpansionLimit, s.expanded, s.start, s.end)
		}
		if s.expanded%ctxCheckEvery == 0 {
			if err := s.cfg.Ctx.Err(); err != nil {
				return Result{Expanded: s.expanded}, fmt.Errorf("astar: search aborted: %w", err)
			}
		}

		cur := s.open.pop()
		n := s.nodes[cur]
		s.closed[s.g.Index(n.pos)] = true
		s.expanded++

		if n.pos == s.end {
			path := s.reconstruct(cur)
			return Result{Path: path, Cost: n.g, Expanded: s.expanded}, nil
		}

		for _, nb := range s.g.Neighbors(n.pos) {
			if !s.passable(nb) {
				continue
			}
			ci := s.g.Index(nb)
			if s.closed[ci] {
				continue
			}
			gScore := n.g + 1
			ni := s.byCell[ci]
			if ni < 0 {
				s.insert(nb, gScore, cur)
				continue
			}
			// strict: an equal g keeps the older parent
			if gScore < s.nodes[ni].g {
				s.nodes[ni].g = gScore
				s.nodes[ni].f = gScore + s.nodes[ni].h
				s.nodes[ni].parent = cur
				s.open.fix(ni)
			}
		}
	}

	return Result{Expanded: s.expanded}, fmt.Errorf("%w: %s to %s", ErrNoPath, s.start, s.end)
}

// insert appends a node to the arena and pushes it on the frontier.
func (s *searcher) insert(p grid.Point, g, parent int) {
	h := grid.Manhattan(p, s.end)
	idx := len(s.nodes)
	s.nodes = append(s.nodes, node{
		pos:    p,
		g:      g,
		h:      h,
		f:      g + h,
		parent: parent,
		seq:    idx,
	})
	s.byCell[s.g.Index(p)] = idx
	s.open.push(idx)
}

// state resolves the effective state of p for this search.
func (s *searcher) state(p grid.Point) grid.CellState {
	if s.cfg.Endpoints {
		switch p {
		case s.end:
			return grid.End
		case s.start:
			return grid.Start
		}
	}
	if st, ok := s.cfg.Overrides[p]; ok {
		return st
	}
	return s.g.At(p)
}

func (s *searcher) passable(p grid.Point) bool {
	return s.state(p).Passable()
}

// reconstruct follows parent indices back to the root.
func (s *searcher) reconstruct(i int) []grid.Point {
	n := 0
	for j := i; j >= 0; j = s.nodes[j].parent {
		n++
	}
	path := make([]grid.Point, n)
	for j := i; j >= 0; j = s.nodes[j].parent {
		n--
		path[n] = s.nodes[j].pos
	}
	return path
}
