package astar_test

import (
	"fmt"

	"github.com/katalvlaran/fieldcover/astar"
	"github.com/katalvlaran/fieldcover/grid"
)

// ExampleFindPath routes a machine around a hedge row.
//
//	. . # .
//	. . # .
//	. . . .
//
// from the top-left corner to the bottom-right one.
func ExampleFindPath() {
	g, _ := grid.ParseText(`
		..#.
		..#.
		....
	`)
	path, err := astar.FindPath(g, grid.Point{Row: 0, Col: 0}, grid.Point{Row: 2, Col: 3})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("steps:", len(path)-1)
	fmt.Println(g.MarkRoute(path))
	// Output:
	// steps: 5
	// *.#.
	// *.#.
	// ****
}
