// Package grid models an agricultural field as a rectangular occupancy grid.
//
// What:
//
//   - Point is a {Row, Col} value type, comparable and usable as a map key.
//   - CellState classifies a cell: Empty, Obstacle, Start, End, Machine, Path.
//     Only Obstacle is impassable; every other state is traversable terrain.
//   - Grid wraps a fixed rows×cols matrix of CellState, deep-copied on
//     construction so callers cannot mutate it behind the planner's back.
//   - Conversions between the typed matrix, the binary matrix
//     (0 = free, 1 = obstacle) and a compact text form ('.', '#', 'S', ...).
//   - Connected components and reachability over 4-connected free cells.
//
// Complexity:
//
//   - Construction and conversions: O(W×H) time and memory.
//   - ConnectedComponents, ReachableFrom: O(W×H×4), Memory: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadCellValue: binary value other than 0/1, or an unknown text rune.
//   - ErrOutOfBounds: a point lies outside the grid.
package grid
