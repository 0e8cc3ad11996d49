// Package fieldcover plans how a farm machine covers a field.
//
// 🚜 What is fieldcover?
//
//	A small, deterministic planning library plus an HTTP service:
//		• grid      – the field: a rows×cols occupancy grid with typed cells
//		• astar     – shortest 4-connected paths (A*, Manhattan heuristic)
//		• coverage  – boustrophedon coverage routes with A* connectors
//		• fieldfile – YAML field descriptions
//
// ✨ Guarantees
//
//   - Same field, same start, same options → same route, byte for byte.
//   - Planners never write to the grid; concurrent plans over one grid
//     are safe.
//   - Routes never step on an obstacle cell.
//
// The service lives in cmd/fieldcover-server and exposes /api/path and
// /api/plan (JSON, YAML or msgpack).
//
// Quick start:
//
//	g, _ := grid.ParseText(`
//		S..#
//		....
//		.#..
//	`)
//	res, err := coverage.Plan(g, grid.Point{Row: 0, Col: 0})
//	if err != nil { … }
//	fmt.Println(res.Route, res.Stats(g).CoveragePercent)
package fieldcover
