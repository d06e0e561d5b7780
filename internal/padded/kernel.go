package padded

import (
	"fmt"

	"life-engine/internal/core"
	"life-engine/internal/partition"
)

const (
	// Name identifies the serial padded engine in the registry.
	Name = "padded"
	// ParallelName identifies the row-partitioned padded engine.
	ParallelName = "padded-parallel"
)

// stepRows computes interior rows [c.Start, c.End) of the next generation
// from src. out is the destination view whose index 0 is padded row
// c.Start+1, column 0. Border columns of out are never written.
func stepRows(src *Buffer, out []uint8, c partition.Chunk) {
	cells := src.cells
	offs := src.offs
	stride, w := src.stride, src.w
	for y := c.Start; y < c.End; y++ {
		row := (y + 1) * stride
		orow := (y - c.Start) * stride
		for x := 1; x <= w; x++ {
			idx := row + x
			var n uint8
			for _, off := range offs {
				n += cells[idx+off]
			}
			out[orow+x] = core.Rule(cells[idx], n)
		}
	}
}

// interior returns the slice of b covering padded rows 1..h.
func (b *Buffer) interior() []uint8 {
	return b.cells[b.stride : (b.h+1)*b.stride]
}

func stepSerial(src, dst *Buffer) {
	stepRows(src, dst.interior(), partition.Chunk{Start: 0, End: src.h})
}

func stepParallel(src, dst *Buffer, workers int) error {
	return partition.Run(dst.interior(), src.stride, src.h, workers, func(c partition.Chunk, view []uint8) error {
		stepRows(src, view, c)
		return nil
	})
}

// Step computes one generation of g.
func Step(g *core.Grid) *core.Grid {
	cur := NewBuffer(g.W, g.H)
	cur.Load(g)
	nxt := NewBuffer(g.W, g.H)
	stepSerial(cur, nxt)
	return nxt.Grid()
}

// StepParallel computes one generation of g with rows split across workers.
// The result is identical to Step for every worker count.
func StepParallel(g *core.Grid, workers int) (*core.Grid, error) {
	cur := NewBuffer(g.W, g.H)
	cur.Load(g)
	nxt := NewBuffer(g.W, g.H)
	if err := stepParallel(cur, nxt, workers); err != nil {
		return nil, fmt.Errorf("padded: step: %w", err)
	}
	return nxt.Grid(), nil
}

// Kernel double-buffers a grid across many generations.
type Kernel struct {
	cur, nxt *Buffer
	parallel bool
	workers  int
}

// NewKernel loads g into a serial kernel.
func NewKernel(g *core.Grid) *Kernel {
	k := &Kernel{cur: NewBuffer(g.W, g.H), nxt: NewBuffer(g.W, g.H)}
	k.cur.Load(g)
	return k
}

// NewParallelKernel loads g into a kernel that splits each generation
// across workers.
func NewParallelKernel(g *core.Grid, workers int) *Kernel {
	k := NewKernel(g)
	k.parallel = true
	k.workers = partition.Workers(workers)
	return k
}

// Step advances one generation. On error the current generation is kept.
func (k *Kernel) Step() error {
	if k.parallel {
		if err := stepParallel(k.cur, k.nxt, k.workers); err != nil {
			return fmt.Errorf("padded: step: %w", err)
		}
	} else {
		stepSerial(k.cur, k.nxt)
	}
	k.cur, k.nxt = k.nxt, k.cur
	return nil
}

// Current exposes the buffer holding the latest generation.
func (k *Kernel) Current() *Buffer { return k.cur }

// Grid extracts the current generation.
func (k *Kernel) Grid() *core.Grid { return k.cur.Grid() }

// Run advances g by n generations.
func Run(g *core.Grid, n int) *core.Grid {
	k := NewKernel(g)
	for i := 0; i < n; i++ {
		_ = k.Step()
	}
	return k.Grid()
}

// RunParallel advances g by n generations using the row-partitioned kernel.
func RunParallel(g *core.Grid, n, workers int) (*core.Grid, error) {
	k := NewParallelKernel(g, workers)
	for i := 0; i < n; i++ {
		if err := k.Step(); err != nil {
			return nil, fmt.Errorf("generation %d: %w", i+1, err)
		}
	}
	return k.Grid(), nil
}

type stepper struct {
	parallel bool
	workers  int
}

func (s stepper) Name() string {
	if s.parallel {
		return ParallelName
	}
	return Name
}

func (s stepper) Step(g *core.Grid) (*core.Grid, error) {
	if s.parallel {
		return StepParallel(g, s.workers)
	}
	return Step(g), nil
}

func init() {
	core.Register(Name, func(int) core.Stepper { return stepper{} })
	core.Register(ParallelName, func(workers int) core.Stepper {
		return stepper{parallel: true, workers: workers}
	})
}
