// Package padded implements the flat-buffer Life kernel. Cells live in a
// (H+2)×(W+2) byte buffer whose outer ring is permanently dead, so every
// interior cell can sum its eight neighbours through fixed index offsets
// without bounds checks on the grid edge.
package padded

import "life-engine/internal/core"

// Buffer is a flat row-major cell buffer with a one-cell dead border.
type Buffer struct {
	w, h   int
	stride int
	cells  []uint8
	offs   [8]int
}

// NewBuffer allocates a zeroed buffer for a w×h interior.
func NewBuffer(w, h int) *Buffer {
	stride := w + 2
	return &Buffer{
		w:      w,
		h:      h,
		stride: stride,
		cells:  make([]uint8, stride*(h+2)),
		offs: [8]int{
			-stride - 1, -stride, -stride + 1,
			-1, 1,
			stride - 1, stride, stride + 1,
		},
	}
}

// Size returns the interior dimensions.
func (b *Buffer) Size() core.Size { return core.Size{W: b.w, H: b.h} }

// Stride is the distance in cells between vertically adjacent cells.
func (b *Buffer) Stride() int { return b.stride }

// Cells exposes the padded backing slice, border included.
func (b *Buffer) Cells() []uint8 { return b.cells }

// Offsets returns the flat offsets of the eight neighbours, NW first,
// row by row.
func (b *Buffer) Offsets() [8]int { return b.offs }

// Index returns the flat index of interior cell (x, y).
func (b *Buffer) Index(x, y int) int { return (y+1)*b.stride + x + 1 }

// Load copies g into the interior. g must match the buffer's interior size.
func (b *Buffer) Load(g *core.Grid) {
	if g.W != b.w || g.H != b.h {
		panic("padded: grid size does not match buffer")
	}
	for y := 0; y < b.h; y++ {
		dst := b.Index(0, y)
		copy(b.cells[dst:dst+b.w], g.Row(y))
	}
}

// Store copies the interior into g. g must match the buffer's interior size.
func (b *Buffer) Store(g *core.Grid) {
	if g.W != b.w || g.H != b.h {
		panic("padded: grid size does not match buffer")
	}
	for y := 0; y < b.h; y++ {
		src := b.Index(0, y)
		copy(g.Row(y), b.cells[src:src+b.w])
	}
}

// Grid returns a new grid holding the interior.
func (b *Buffer) Grid() *core.Grid {
	g := core.NewGrid(b.w, b.h)
	b.Store(g)
	return g
}

// BorderClear reports whether every border cell is dead.
func (b *Buffer) BorderClear() bool {
	last := (b.h + 1) * b.stride
	for x := 0; x < b.stride; x++ {
		if b.cells[x] != 0 || b.cells[last+x] != 0 {
			return false
		}
	}
	for y := 1; y <= b.h; y++ {
		row := y * b.stride
		if b.cells[row] != 0 || b.cells[row+b.stride-1] != 0 {
			return false
		}
	}
	return true
}
