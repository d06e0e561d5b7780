// Package growth decides when a square grid must be enlarged to keep live
// cells away from its bounded edge, and performs the enlargement.
//
// Growth is checked before each generation. When a live cell is found
// within Margin cells of any edge the grid is reallocated to the smallest
// multiple of 64 that is at least S+2*Pad on a side, with the old content
// centred in it. Sizes never shrink.
package growth

import (
	"errors"
	"fmt"

	"life-engine/internal/bitboard"
	"life-engine/internal/core"
)

const (
	// DefaultMargin is the width of the band scanned along each edge.
	DefaultMargin = 5
	// DefaultPad is the minimum number of dead cells added on each side.
	DefaultPad = 1
	// Align is the size granularity of growable grids.
	Align = bitboard.WordBits
)

var (
	// ErrNotSquare reports a grid whose width and height differ.
	ErrNotSquare = errors.New("growth: grid must be square")
	// ErrNotAligned reports a side that is not a positive multiple of 64.
	ErrNotAligned = errors.New("growth: size must be a positive multiple of 64")
	// ErrGrowthLimit reports that the next size would exceed Policy.MaxSize.
	ErrGrowthLimit = errors.New("growth: size limit reached")
	// ErrBadPolicy reports an invalid margin or pad.
	ErrBadPolicy = errors.New("growth: invalid policy")
)

// Kind tags a Decision.
type Kind int

const (
	// NoGrowthNeeded leaves the grid as it is.
	NoGrowthNeeded Kind = iota
	// GrowTo reallocates the grid to Decision.Size.
	GrowTo
)

func (k Kind) String() string {
	switch k {
	case NoGrowthNeeded:
		return "no-growth"
	case GrowTo:
		return "grow"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Decision is the outcome of a growth check. For GrowTo, Size is the new
// side length and Offset is where old cell (0, 0) lands on both axes.
type Decision struct {
	Kind   Kind
	Size   int
	Offset int
}

// Policy holds the growth parameters. MaxSize of zero means unbounded.
type Policy struct {
	Margin  int
	Pad     int
	MaxSize int
}

// DefaultPolicy returns the standard policy.
func DefaultPolicy() Policy {
	return Policy{Margin: DefaultMargin, Pad: DefaultPad}
}

// Validate checks the policy parameters.
func (p Policy) Validate() error {
	if p.Margin < 0 {
		return fmt.Errorf("%w: margin %d", ErrBadPolicy, p.Margin)
	}
	if p.Pad < 1 {
		return fmt.Errorf("%w: pad %d", ErrBadPolicy, p.Pad)
	}
	if p.MaxSize < 0 {
		return fmt.Errorf("%w: max size %d", ErrBadPolicy, p.MaxSize)
	}
	return nil
}

// CheckSize verifies that a w×h grid can be grown.
func CheckSize(w, h int) error {
	if w != h {
		return fmt.Errorf("%w: %dx%d", ErrNotSquare, w, h)
	}
	if w <= 0 || w%Align != 0 {
		return fmt.Errorf("%w: got %d", ErrNotAligned, w)
	}
	return nil
}

// NextSize returns the size and content offset used when a grid of side s
// grows.
func (p Policy) NextSize(s int) (size, offset int) {
	inter := s + 2*p.Pad
	size = (inter + Align - 1) / Align * Align
	extra := size - inter
	return size, p.Pad + extra/2
}

func (p Policy) decide(s int, near bool) (Decision, error) {
	if !near {
		return Decision{Kind: NoGrowthNeeded, Size: s}, nil
	}
	size, off := p.NextSize(s)
	if p.MaxSize > 0 && size > p.MaxSize {
		return Decision{}, fmt.Errorf("%w: %d exceeds %d", ErrGrowthLimit, size, p.MaxSize)
	}
	return Decision{Kind: GrowTo, Size: size, Offset: off}, nil
}

// bands returns the margin clamped to the grid size. Rows [0,m) and
// [s-m,s) form the top and bottom bands; rows in between are checked on
// columns [0,m) and [s-m,s). When s <= 2m the two row bands cover the
// whole grid, so any live cell triggers growth.
func (p Policy) bands(s int) int {
	return min(p.Margin, s)
}

// Decide reports whether g must grow before its next generation.
func (p Policy) Decide(g *core.Grid) (Decision, error) {
	if err := p.Validate(); err != nil {
		return Decision{}, err
	}
	if err := CheckSize(g.W, g.H); err != nil {
		return Decision{}, err
	}
	s := g.W
	m := p.bands(s)
	near := false
	for y := 0; y < s && !near; y++ {
		row := g.Row(y)
		if y < m || y >= s-m {
			near = anyAlive(row)
			continue
		}
		near = anyAlive(row[:m]) || anyAlive(row[s-m:])
	}
	return p.decide(s, near)
}

// DecideBoard is Decide for bit-packed boards.
func (p Policy) DecideBoard(b *bitboard.Board) (Decision, error) {
	if err := p.Validate(); err != nil {
		return Decision{}, err
	}
	if err := CheckSize(b.Width(), b.Height()); err != nil {
		return Decision{}, err
	}
	s := b.Width()
	m := p.bands(s)
	near := false
	for y := 0; y < s && !near; y++ {
		row := b.Row(y)
		if y < m || y >= s-m {
			near = anyBits(row, 0, s)
			continue
		}
		near = anyBits(row, 0, m) || anyBits(row, s-m, s)
	}
	return p.decide(s, near)
}

func anyAlive(cells []uint8) bool {
	for _, c := range cells {
		if c != 0 {
			return true
		}
	}
	return false
}

// anyBits reports whether any column in [lo, hi) of row is set.
func anyBits(row []uint64, lo, hi int) bool {
	for lo < hi {
		wi, b := lo/Align, lo%Align
		end := min(hi-wi*Align, Align)
		mask := ^uint64(0)
		if n := end - b; n < Align {
			mask = (uint64(1)<<n - 1) << b
		}
		if row[wi]&mask != 0 {
			return true
		}
		lo = wi*Align + end
	}
	return false
}

// Apply returns g enlarged according to d. NoGrowthNeeded returns g.
func Apply(g *core.Grid, d Decision) *core.Grid {
	if d.Kind != GrowTo {
		return g
	}
	out := core.NewGrid(d.Size, d.Size)
	for y := 0; y < g.H; y++ {
		dst := out.Index(d.Offset, y+d.Offset)
		copy(out.Cells()[dst:dst+g.W], g.Row(y))
	}
	return out
}

// ApplyBoard returns b enlarged according to d, shifting each word into
// place when the offset is not word aligned.
func ApplyBoard(b *bitboard.Board, d Decision) (*bitboard.Board, error) {
	if d.Kind != GrowTo {
		return b, nil
	}
	out, err := bitboard.NewBoard(d.Size, d.Size)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Height(); y++ {
		dst := out.Row(y + d.Offset)
		for wi, w := range b.Row(y) {
			if w == 0 {
				continue
			}
			pos := d.Offset + wi*Align
			dwi, sh := pos/Align, pos%Align
			dst[dwi] |= w << sh
			if sh != 0 {
				dst[dwi+1] |= w >> (Align - sh)
			}
		}
	}
	return out, nil
}
