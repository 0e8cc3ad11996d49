package grid

import (
	"fmt"
	"strconv"
)

// Point is a cell coordinate. Row grows downwards, Col grows to the right.
type Point struct {
	Row int `json:"row" yaml:"row" msgpack:"row"`
	Col int `json:"col" yaml:"col" msgpack:"col"`
}

// String formats the point as "row,col", the composite key used in logs and sets.
func (p Point) String() string {
	return strconv.Itoa(p.Row) + "," + strconv.Itoa(p.Col)
}

// Manhattan returns |Δrow| + |Δcol| between a and b.
func Manhattan(a, b Point) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CellState is the occupancy state of a single cell.
type CellState uint8

const (
	// Empty is free, unannotated terrain.
	Empty CellState = iota
	// Obstacle is impassable.
	Obstacle
	// Start marks a designated start cell.
	Start
	// End marks a designated end cell.
	End
	// Machine marks the machine's parking cell.
	Machine
	// Path is a rendering annotation written after planning.
	Path
)

var stateNames = [...]string{
	Empty:    "empty",
	Obstacle: "obstacle",
	Start:    "start",
	End:      "end",
	Machine:  "machine",
	Path:     "path",
}

var stateRunes = [...]rune{
	Empty:    '.',
	Obstacle: '#',
	Start:    'S',
	End:      'E',
	Machine:  'M',
	Path:     '*',
}

// String returns the lower-case state name.
func (s CellState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "CellState(" + strconv.Itoa(int(s)) + ")"
}

// Rune returns the text-form character for s.
func (s CellState) Rune() rune {
	if int(s) < len(stateRunes) {
		return stateRunes[s]
	}
	return '?'
}

// Passable reports whether a machine may drive over a cell in state s.
func (s CellState) Passable() bool {
	return s != Obstacle
}

// ParseCellState maps a state name ("empty", "obstacle", ...) to its CellState.
func ParseCellState(name string) (CellState, error) {
	for i, n := range stateNames {
		if n == name {
			return CellState(i), nil
		}
	}
	return Empty, fmt.Errorf("%w: state %q", ErrBadCellValue, name)
}

// stateFromRune is the inverse of CellState.Rune.
func stateFromRune(r rune) (CellState, bool) {
	for i, c := range stateRunes {
		if c == r {
			return CellState(i), true
		}
	}
	return Empty, false
}

// Grid is a rectangular occupancy grid. Dimensions are fixed once built;
// cells are stored row-major.
type Grid struct {
	rows, cols int
	cells      []CellState
}

// neighborOffsets lists 4-connected moves in search order: up, down, left, right.
var neighborOffsets = [4]Point{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}
