package bitboard

import (
	"fmt"
	"math/bits"

	"life-engine/internal/core"
	"life-engine/internal/partition"
)

const (
	// Name identifies the serial bitboard engine in the registry.
	Name = "bitboard"
	// ParallelName identifies the row-partitioned bitboard engine.
	ParallelName = "bitboard-parallel"
)

// stepRows computes rows [c.Start, c.End) of the next generation of src into
// out, whose index 0 is the first word of row c.Start.
func stepRows(src *Board, out []uint64, c partition.Chunk) {
	wpr := src.wpr
	for y := c.Start; y < c.End; y++ {
		var prev, next []uint64
		if y > 0 {
			prev = src.Row(y - 1)
		}
		if y+1 < src.height {
			next = src.Row(y + 1)
		}
		cur := src.Row(y)
		orow := out[(y-c.Start)*wpr : (y-c.Start+1)*wpr]
		for wi, cw := range cur {
			var word uint64
			for bit := 0; bit < WordBits; bit++ {
				n := bits.OnesCount8(Neighbors(prev, cur, next, wi, bit))
				alive := uint8(cw >> bit & 1)
				word |= uint64(core.Rule(alive, uint8(n))) << bit
			}
			orow[wi] = word
		}
	}
}

func mustAligned(b *Board) {
	if b.width <= 0 || b.width%WordBits != 0 || len(b.words) != b.wpr*b.height {
		panic(fmt.Sprintf("bitboard: malformed board %dx%d", b.width, b.height))
	}
}

// Step computes one generation of b. A board whose width is not a multiple
// of 64 is a contract breach and panics.
func Step(b *Board) *Board {
	mustAligned(b)
	out := newBoard(b.width, b.height)
	stepRows(b, out.words, partition.Chunk{Start: 0, End: b.height})
	return out
}

// StepParallel computes one generation of b with rows split across workers.
func StepParallel(b *Board, workers int) (*Board, error) {
	mustAligned(b)
	out := newBoard(b.width, b.height)
	if err := stepParallel(b, out, workers); err != nil {
		return nil, fmt.Errorf("bitboard: step: %w", err)
	}
	return out, nil
}

func stepParallel(src, dst *Board, workers int) error {
	return partition.Run(dst.words, src.wpr, src.height, workers, func(c partition.Chunk, view []uint64) error {
		stepRows(src, view, c)
		return nil
	})
}

// Kernel double-buffers a board across many generations.
type Kernel struct {
	cur, nxt *Board
	parallel bool
	workers  int
}

// NewKernel copies b into a serial kernel.
func NewKernel(b *Board) *Kernel {
	mustAligned(b)
	return &Kernel{cur: b.Clone(), nxt: newBoard(b.width, b.height)}
}

// NewParallelKernel copies b into a kernel that splits each generation
// across workers.
func NewParallelKernel(b *Board, workers int) *Kernel {
	k := NewKernel(b)
	k.parallel = true
	k.workers = partition.Workers(workers)
	return k
}

// Step advances one generation. On error the current generation is kept.
func (k *Kernel) Step() error {
	if k.parallel {
		if err := stepParallel(k.cur, k.nxt, k.workers); err != nil {
			return fmt.Errorf("bitboard: step: %w", err)
		}
	} else {
		stepRows(k.cur, k.nxt.words, partition.Chunk{Start: 0, End: k.cur.height})
	}
	k.cur, k.nxt = k.nxt, k.cur
	return nil
}

// Board returns a copy of the current generation.
func (k *Kernel) Board() *Board { return k.cur.Clone() }

// Current exposes the current generation without copying. The caller must
// not modify it.
func (k *Kernel) Current() *Board { return k.cur }

// Reset replaces the kernel state with a copy of b, reallocating when the
// size changes.
func (k *Kernel) Reset(b *Board) {
	mustAligned(b)
	if b.width != k.cur.width || b.height != k.cur.height {
		k.nxt = newBoard(b.width, b.height)
	}
	k.cur = b.Clone()
}

// Run advances b by n generations.
func Run(b *Board, n int) *Board {
	k := NewKernel(b)
	for i := 0; i < n; i++ {
		_ = k.Step()
	}
	return k.Board()
}

// RunParallel advances b by n generations using the row-partitioned kernel.
func RunParallel(b *Board, n, workers int) (*Board, error) {
	k := NewParallelKernel(b, workers)
	for i := 0; i < n; i++ {
		if err := k.Step(); err != nil {
			return nil, fmt.Errorf("generation %d: %w", i+1, err)
		}
	}
	return k.Board(), nil
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

// Step packs g, advances it one generation and unpacks the result.
func (s stepper) Step(g *core.Grid) (*core.Grid, error) {
	b, err := FromGrid(g)
	if err != nil {
		return nil, err
	}
	if !s.parallel {
		return Step(b).ToGrid(), nil
	}
	out, err := StepParallel(b, s.workers)
	if err != nil {
		return nil, err
	}
	return out.ToGrid(), nil
}

func init() {
	core.Register(Name, func(int) core.Stepper { return stepper{} })
	core.Register(ParallelName, func(workers int) core.Stepper {
		return stepper{parallel: true, workers: workers}
	})
}
