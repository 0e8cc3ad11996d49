// Package coverage plans a route that drives a machine over every reachable
// free cell of a grid.Grid.
//
// What:
//
//   - Decompose splits the field into vertical sweep segments. Even columns
//     are scanned top→bottom, odd columns bottom→top (boustrophedon), and
//     obstacles break a column into several segments.
//   - Plan repeatedly picks the unvisited segment cell closest to the
//     machine, connects to it with an A* path (package astar) and sweeps the
//     segment from there. Segments that cannot be reached are skipped, not
//     fatal.
//   - Connectors are checked against the grid before use; one that crosses an
//     obstacle is rejected, counted in Result.Unsafe and logged.
//   - An optional end cell (WithEnd) is appended as a final A* leg.
//   - ComputeStats and Result.Stats report distance, distinct cells and the
//     coverage percentage.
//
// Complexity:
//
//   - Decompose: O(W×H).
//   - Plan: one connector search per iteration, each O(V²) with the linear
//     frontier (O(V log V) with astar.FrontierHeap), V = W×H. The loop is
//     capped at IterationFactor×segments iterations (default 3).
//
// Errors:
//
//   - ErrInvalidInput wraps ErrNilGrid, ErrStartOutOfBounds, ErrStartBlocked,
//     ErrEndOutOfBounds, ErrEndBlocked; the Result is nil.
//   - ErrEndUnreachable comes with the finished coverage Result.
//   - A done context yields the partial Result and the wrapped context error.
//   - ErrOptionViolation for invalid options.
//
// The grid is never modified; the planner keeps its own visited set.
package coverage
