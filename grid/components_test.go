package grid_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fieldcover/grid"
)

// TestConnectedComponents_Simple tests a 3×4 field split into two free regions.
//
//	. . # .
//	. . # .
//	# # # .
//
// Expected: regions of sizes 4 and 3.
func TestConnectedComponents_Simple(t *testing.T) {
	g, err := grid.ParseText(`
		..#.
		..#.
		###.
	`)
	require.NoError(t, err)

	comps := g.ConnectedComponents()
	require.Len(t, comps, 2)

	sizes := []int{len(comps[0]), len(comps[1])}
	sort.Ints(sizes)
	assert.Equal(t, []int{3, 4}, sizes)
	assert.Equal(t, grid.Point{Row: 0, Col: 0}, comps[0][0], "first component starts at the first free cell")
}

// TestConnectedComponents_NoDiagonal ensures corner-touching cells stay apart.
func TestConnectedComponents_NoDiagonal(t *testing.T) {
	g, err := grid.ParseText(`
		.#
		#.
	`)
	require.NoError(t, err)
	assert.Len(t, g.ConnectedComponents(), 2)
}

func TestConnectedComponents_AllObstacles(t *testing.T) {
	g, err := grid.FromBinary([][]int{{1, 1}, {1, 1}})
	require.NoError(t, err)
	assert.Empty(t, g.ConnectedComponents())
}

func TestReachableFrom(t *testing.T) {
	g, err := grid.ParseText(`
		..#..
		..#..
		..#..
	`)
	require.NoError(t, err)

	assert.Len(t, g.ReachableFrom(grid.Point{Row: 0, Col: 0}), 6)
	assert.Len(t, g.ReachableFrom(grid.Point{Row: 2, Col: 4}), 6)
	assert.Nil(t, g.ReachableFrom(grid.Point{Row: 0, Col: 2}), "obstacle origin")
	assert.Nil(t, g.ReachableFrom(grid.Point{Row: 7, Col: 0}), "out of bounds origin")
}
