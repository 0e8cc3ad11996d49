// Package astar finds shortest 4-connected paths on a grid.Grid with the
// A* algorithm.
//
// Overview:
//
//   - Unit step cost, orthogonal moves only (up, down, left, right).
//   - Manhattan heuristic |Δrow|+|Δcol|: admissible and consistent, so the
//     returned path always has the minimum number of steps.
//   - Search nodes live in an index-based arena; parent links are indices.
//   - The grid is read-only. Callers that need an endpoint to count as
//     traversable (e.g. a machine parked on an obstacle marker) pass an
//     override set instead of relabelling cells.
//
// Key features:
//
//   - WithEndpoints(): treat start/end as Start/End markers.
//   - WithOverrides(m): shadow any cell's state for this search only.
//   - WithFrontier(FrontierHeap): binary-heap open set for large fields;
//     FrontierLinear (default) scans the open list, which is cheap at
//     field sizes around 40×50.
//   - WithMaxExpansions(n), WithContext(ctx): step and wall-clock caps.
//
// Error handling (sentinel errors):
//
//   - ErrNilGrid, ErrOutOfBounds: invalid input.
//   - ErrNoPath: end is unreachable. start == end yields the one-cell path.
//   - ErrExpansionLimit: MaxExpansions reached before end was extracted.
//   - ErrOptionViolation: invalid option value.
//
// Thread safety:
//
//   - Search never writes to the grid, so concurrent searches over the same
//     *grid.Grid are safe as long as nobody mutates it meanwhile.
package astar
