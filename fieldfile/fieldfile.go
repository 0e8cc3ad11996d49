package fieldfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fieldcover/coverage"
	"github.com/katalvlaran/fieldcover/grid"
)

var (
	// ErrNoCells indicates the document has neither rows nor cells.
	ErrNoCells = errors.New("fieldfile: no rows or cells")

	// ErrAmbiguousCells indicates the document has both rows and cells.
	ErrAmbiguousCells = errors.New("fieldfile: both rows and cells given")

	// ErrNoStart indicates no start key and no S marker.
	ErrNoStart = errors.New("fieldfile: no start cell")
)

// Field is a decoded field description.
type Field struct {
	Name  string
	Grid  *grid.Grid
	Start grid.Point
	End   *grid.Point
}

// Document is the serialized shape of a field, shared by YAML files and
// JSON request bodies. Exactly one of Rows and Cells must be set.
type Document struct {
	Name  string      `json:"name,omitempty" yaml:"name"`
	Rows  []string    `json:"rows,omitempty" yaml:"rows"`
	Cells [][]int     `json:"cells,omitempty" yaml:"cells"`
	Start *grid.Point `json:"start,omitempty" yaml:"start"`
	End   *grid.Point `json:"end,omitempty" yaml:"end"`
}

// Load reads and decodes the field file at path.
func Load(path string) (*Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a field document from r.
func Decode(r io.Reader) (*Field, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fieldfile: %w", err)
	}
	return doc.Field()
}

// Field validates d and builds the grid. A missing start falls back to the
// first S marker, a missing end to the first E marker.
func (d Document) Field() (*Field, error) {
	var (
		g   *grid.Grid
		err error
	)
	switch {
	case len(d.Rows) > 0 && len(d.Cells) > 0:
		return nil, ErrAmbiguousCells
	case len(d.Rows) > 0:
		g, err = grid.ParseRows(d.Rows)
	case len(d.Cells) > 0:
		g, err = grid.FromBinary(d.Cells)
	default:
		return nil, ErrNoCells
	}
	if err != nil {
		return nil, fmt.Errorf("fieldfile: %q: %w", d.Name, err)
	}

	f := &Field{Name: d.Name, Grid: g}
	switch {
	case d.Start != nil:
		f.Start = *d.Start
	default:
		p, ok := g.Find(grid.Start)
		if !ok {
			return nil, ErrNoStart
		}
		f.Start = p
	}
	if d.End != nil {
		end := *d.End
		f.End = &end
	} else if p, ok := g.Find(grid.End); ok {
		f.End = &p
	}
	return f, nil
}

// Plan runs the coverage planner from the field's start, finishing at its
// end cell when one is set. opts are applied after the end option.
func (f *Field) Plan(opts ...coverage.Option) (*coverage.Result, error) {
	all := make([]coverage.Option, 0, len(opts)+1)
	if f.End != nil {
		all = append(all, coverage.WithEnd(*f.End))
	}
	all = append(all, opts...)
	return coverage.Plan(f.Grid, f.Start, all...)
}
