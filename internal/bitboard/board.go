// Package bitboard stores Life grids as 64 cells per machine word and steps
// them with shift/mask neighbour extraction.
//
// Bit b of word wi in a row holds column wi*64+b. Rows and words beyond the
// grid edge read as zero; no padded copy of the board is ever built.
package bitboard

import (
	"errors"
	"fmt"
	"math/bits"

	"life-engine/internal/core"
)

// WordBits is the number of cells packed into one word.
const WordBits = 64

var (
	// ErrWidthNotAligned reports a width that is not a positive multiple of 64.
	ErrWidthNotAligned = errors.New("bitboard: width must be a positive multiple of 64")
	// ErrRaggedRows reports rows with differing word counts.
	ErrRaggedRows = errors.New("bitboard: ragged rows")
)

// Board is a bit-packed grid. Rows are stored back to back, WordsPerRow
// words each.
type Board struct {
	width, height int
	wpr           int
	words         []uint64
}

func checkWidth(width int) error {
	if width <= 0 || width%WordBits != 0 {
		return fmt.Errorf("%w: got %d", ErrWidthNotAligned, width)
	}
	return nil
}

// NewBoard allocates an all-dead board.
func NewBoard(width, height int) (*Board, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if height <= 0 {
		return nil, fmt.Errorf("bitboard: height must be positive, got %d", height)
	}
	return newBoard(width, height), nil
}

func newBoard(width, height int) *Board {
	wpr := width / WordBits
	return &Board{width: width, height: height, wpr: wpr, words: make([]uint64, wpr*height)}
}

// FromGrid packs g. g.W must be a multiple of 64.
func FromGrid(g *core.Grid) (*Board, error) {
	b, err := NewBoard(g.W, g.H)
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.H; y++ {
		row := b.Row(y)
		for x, c := range g.Row(y) {
			row[x/WordBits] |= uint64(c&1) << (x % WordBits)
		}
	}
	return b, nil
}

// FromRows builds a board from per-row word slices, copying them.
func FromRows(rows [][]uint64, width int) (*Board, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("bitboard: no rows")
	}
	b := newBoard(width, len(rows))
	for y, r := range rows {
		if len(r) != b.wpr {
			return nil, fmt.Errorf("%w: row %d has %d words, want %d", ErrRaggedRows, y, len(r), b.wpr)
		}
		copy(b.Row(y), r)
	}
	return b, nil
}

// Width returns the width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// WordsPerRow returns width/64.
func (b *Board) WordsPerRow() int { return b.wpr }

// Row returns the words of row y.
func (b *Board) Row(y int) []uint64 { return b.words[y*b.wpr : (y+1)*b.wpr] }

// Rows returns a copy of the board as one word slice per row.
func (b *Board) Rows() [][]uint64 {
	rows := make([][]uint64, b.height)
	for y := range rows {
		rows[y] = append([]uint64(nil), b.Row(y)...)
	}
	return rows
}

// Alive reports whether (x, y) is alive. Off-board coordinates are dead.
func (b *Board) Alive(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.words[y*b.wpr+x/WordBits]>>(x%WordBits)&1 == 1
}

// Set updates the cell at (x, y).
func (b *Board) Set(x, y int, alive bool) {
	i := y*b.wpr + x/WordBits
	mask := uint64(1) << (x % WordBits)
	if alive {
		b.words[i] |= mask
	} else {
		b.words[i] &^= mask
	}
}

// Population counts live cells.
func (b *Board) Population() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	c.words = append([]uint64(nil), b.words...)
	return &c
}

// Equal reports whether both boards have the same shape and cells.
func (b *Board) Equal(o *Board) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.words {
		if b.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// ToGrid unpacks the board.
func (b *Board) ToGrid() *core.Grid {
	g := core.NewGrid(b.width, b.height)
	for y := 0; y < b.height; y++ {
		row := b.Row(y)
		out := g.Row(y)
		for x := range out {
			out[x] = uint8(row[x/WordBits] >> (x % WordBits) & 1)
		}
	}
	return g
}
