package core

import (
	"errors"
	"fmt"
)

var (
	// ErrRaggedRows reports rows of unequal length.
	ErrRaggedRows = errors.New("core: ragged rows")
	// ErrBadDimensions reports a cell slice that does not match w*h.
	ErrBadDimensions = errors.New("core: cell count does not match dimensions")
	// ErrBadCell reports a cell value other than 0 or 1.
	ErrBadCell = errors.New("core: cell value must be 0 or 1")
)

// Grid stores a finite two-state grid in row-major order. Every value is 0
// (dead) or 1 (alive); cells beyond the grid are dead.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]uint8, w*h)}
}

// GridFromCells wraps a copy of cells as a w×h grid.
func GridFromCells(w, h int, cells []uint8) (*Grid, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("%w: %dx%d with %d cells", ErrBadDimensions, w, h, len(cells))
	}
	for i, c := range cells {
		if c > 1 {
			return nil, fmt.Errorf("%w: index %d holds %d", ErrBadCell, i, c)
		}
	}
	g := NewGrid(w, h)
	copy(g.data, cells)
	return g, nil
}

// GridFromRows builds a grid from a 2D boolean structure.
func GridFromRows(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrBadDimensions)
	}
	w := len(rows[0])
	g := NewGrid(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, y, len(row), w)
		}
		for x, alive := range row {
			if alive {
				g.data[y*w+x] = 1
			}
		}
	}
	return g, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Row returns the cells of row y.
func (g *Grid) Row(y int) []uint8 { return g.data[y*g.W : (y+1)*g.W] }

// Alive reports whether (x, y) is alive. Off-grid coordinates are dead.
func (g *Grid) Alive(x, y int) bool {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return false
	}
	return g.data[y*g.W+x] == 1
}

// Set updates the cell at (x, y).
func (g *Grid) Set(x, y int, alive bool) {
	var v uint8
	if alive {
		v = 1
	}
	g.data[y*g.W+x] = v
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.data {
		n += int(c)
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, data: append([]uint8(nil), g.data...)}
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.data {
		if g.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Rows converts the grid into a 2D boolean structure.
func (g *Grid) Rows() [][]bool {
	rows := make([][]bool, g.H)
	for y := range rows {
		row := make([]bool, g.W)
		for x := range row {
			row[x] = g.data[y*g.W+x] == 1
		}
		rows[y] = row
	}
	return rows
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
