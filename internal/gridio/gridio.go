// Package gridio reads and writes grids in the plain text format: one line
// per row, 'X' for a live cell and '.' for a dead one.
package gridio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"life-engine/internal/core"
)

const (
	Alive = 'X'
	Dead  = '.'

	clearScreen = "\x1b[2J\x1b[1;1H"
)

var (
	// ErrUnexpectedChar reports a character other than Alive or Dead.
	ErrUnexpectedChar = errors.New("gridio: unexpected character")
	// ErrEmpty reports input without any cells.
	ErrEmpty = errors.New("gridio: empty grid")
)

// Parse reads a grid. Short lines are padded with dead cells up to the
// longest line.
func Parse(r io.Reader) (*core.Grid, error) {
	var rows [][]bool
	width := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		row := make([]bool, 0, len(text))
		for col, ch := range text {
			switch ch {
			case Alive:
				row = append(row, true)
			case Dead:
				row = append(row, false)
			default:
				return nil, fmt.Errorf("%w %q at line %d column %d", ErrUnexpectedChar, ch, line, col+1)
			}
		}
		width = max(width, len(row))
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridio: %w", err)
	}
	if width == 0 {
		return nil, ErrEmpty
	}
	for y, row := range rows {
		if len(row) < width {
			rows[y] = append(row, make([]bool, width-len(row))...)
		}
	}
	return core.GridFromRows(rows)
}

// Load parses the grid stored at path.
func Load(path string) (*core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridio: %w", err)
	}
	defer f.Close()
	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// PadToWords centres g inside the smallest square whose side is a multiple
// of 64 and covers both dimensions. Odd padding puts the extra row or column
// after the content.
func PadToWords(g *core.Grid) *core.Grid {
	side := max(roundUp(g.W), roundUp(g.H))
	if side == g.W && side == g.H {
		return g.Clone()
	}
	left, top := (side-g.W)/2, (side-g.H)/2
	out := core.NewGrid(side, side)
	for y := 0; y < g.H; y++ {
		copy(out.Row(top + y)[left:], g.Row(y))
	}
	return out
}

func roundUp(n int) int {
	return (n + 63) / 64 * 64
}

// Write prints g, one line per row.
func Write(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, g.W+1)
	line[g.W] = '\n'
	for y := 0; y < g.H; y++ {
		for x, c := range g.Row(y) {
			if c != 0 {
				line[x] = Alive
			} else {
				line[x] = Dead
			}
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Animate clears the terminal and redraws each of n generations, advancing
// with st and pausing tick between frames. It stops early when ctx is done
// and returns the generation it reached.
func Animate(ctx context.Context, w io.Writer, st core.Stepper, g *core.Grid, n int, tick time.Duration) (*core.Grid, error) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for i := 0; i < n; i++ {
		if _, err := io.WriteString(w, clearScreen); err != nil {
			return g, err
		}
		if err := Write(w, g); err != nil {
			return g, err
		}
		next, err := st.Step(g)
		if err != nil {
			return g, fmt.Errorf("gridio: generation %d: %w", i+1, err)
		}
		g = next
		select {
		case <-ctx.Done():
			return g, ctx.Err()
		case <-ticker.C:
		}
	}
	return g, nil
}
