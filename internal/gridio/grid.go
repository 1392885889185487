// Package gridio reads and writes numeric grids as YAML documents.
//
// A document stores the samples row by row in image order:
//
//	width: 3
//	height: 2
//	pixels:
//	  - [0, 0.5, 1]
//	  - [0, 0.5, 1]
//
// pixels[y][x] is the sample at column x of row y. In memory a grid is a
// gonum matrix with width rows and height columns, indexed At(x, y), which is
// the layout the chanvese package works on.
package gridio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// ErrShape is returned when a document's pixels do not match its dimensions.
var ErrShape = errors.New("gridio: pixel rows do not match width/height")

// Grid is the on-disk form of a single-channel grid.
type Grid struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Pixels [][]float64 `yaml:"pixels,flow"`
}

// Result is the document written after a segmentation.
type Result struct {
	Iterations int     `yaml:"iterations"`
	Converged  bool    `yaml:"converged"`
	RMS        float64 `yaml:"rms"`
	C1         float64 `yaml:"c1"`
	C2         float64 `yaml:"c2"`
	Energy     float64 `yaml:"energy"`
	Phi        *Grid   `yaml:"phi"`
	Mask       *Grid   `yaml:"mask"`
}

// Validate checks that Pixels holds Height rows of Width values each.
func (g *Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrShape, g.Width, g.Height)
	}
	if len(g.Pixels) != g.Height {
		return fmt.Errorf("%w: %d rows for height %d", ErrShape, len(g.Pixels), g.Height)
	}
	for y, row := range g.Pixels {
		if len(row) != g.Width {
			return fmt.Errorf("%w: row %d has %d values for width %d", ErrShape, y, len(row), g.Width)
		}
	}
	return nil
}

// ToDense converts the grid into a width x height matrix indexed At(x, y).
func (g *Grid) ToDense() (*mat.Dense, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	m := mat.NewDense(g.Width, g.Height, nil)
	for y, row := range g.Pixels {
		// Row y of the document is column y of the matrix.
		m.SetCol(y, row)
	}
	return m, nil
}

// FromDense converts a width x height matrix back into a document.
func FromDense(m mat.Matrix) *Grid {
	width, height := m.Dims()
	g := &Grid{
		Width:  width,
		Height: height,
		Pixels: make([][]float64, height),
	}
	for y := 0; y < height; y++ {
		g.Pixels[y] = mat.Col(nil, y, m)
	}
	return g
}

// Decode reads a grid document from r.
func Decode(r io.Reader) (*mat.Dense, error) {
	var g Grid
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("error parsing grid: %w", err)
	}
	return g.ToDense()
}

// Encode writes v (a *Grid or *Result) as YAML to w.
func Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding grid: %w", err)
	}
	return enc.Close()
}

// Load reads a grid document from path.
func Load(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening grid file: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save writes v as YAML to path.
func Save(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if err := Encode(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
