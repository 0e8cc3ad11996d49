// Package fieldfile reads field descriptions from YAML.
//
// A field file names the field, gives its cells either as text rows
// ('.' free, '#' obstacle, 'S' start, 'E' end) or as a 0/1 matrix, and
// optionally pins the start and end cells:
//
//	name: north-paddock
//	rows:
//	  - "S..#"
//	  - "..#E"
//	start: {row: 0, col: 0}
//
// Explicit start/end keys win over S/E markers.
package fieldfile
