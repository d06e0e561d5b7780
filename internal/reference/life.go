// Package reference holds the naive per-cell Life kernel used as the
// correctness oracle for the optimised engines.
package reference

import "life-engine/internal/core"

// Name identifies the reference engine in the registry.
const Name = "reference"

// Life implements Conway's Game of Life on a bounded grid: cells beyond the
// edge are dead.
type Life struct {
	w, h int
	cur  []uint8
	nxt  []uint8
}

// New returns a Life simulation holding a copy of g.
func New(g *core.Grid) *Life {
	cells := append([]uint8(nil), g.Cells()...)
	return &Life{w: g.W, h: g.H, cur: cells, nxt: make([]uint8, len(cells))}
}

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.w, H: l.h} }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur }

// Neighbors counts live cells around (x, y) without wrapping.
func (l *Life) Neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= l.h {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if (dx == 0 && dy == 0) || nx < 0 || nx >= l.w {
				continue
			}
			n += int(l.cur[ny*l.w+nx])
		}
	}
	return n
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	w, h := l.w, l.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := l.Neighbors(x, y)
			idx := y*w + x
			alive := l.cur[idx] == 1
			l.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				l.nxt[idx] = 1
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
}

// Grid returns a copy of the current state.
func (l *Life) Grid() *core.Grid {
	g, _ := core.GridFromCells(l.w, l.h, l.cur)
	return g
}

// Run advances g by n generations and returns the result.
func Run(g *core.Grid, n int) *core.Grid {
	l := New(g)
	for i := 0; i < n; i++ {
		l.Step()
	}
	return l.Grid()
}

type stepper struct{}

func (stepper) Name() string { return Name }

func (stepper) Step(g *core.Grid) (*core.Grid, error) { return Run(g, 1), nil }

func init() {
	core.Register(Name, func(int) core.Stepper { return stepper{} })
}
