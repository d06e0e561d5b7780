package core

import (
	"errors"
	"testing"
)

func TestGridFromRowsRejectsRagged(t *testing.T) {
	_, err := GridFromRows([][]bool{{true, false}, {true}})
	if !errors.Is(err, ErrRaggedRows) {
		t.Fatalf("expected ErrRaggedRows, got %v", err)
	}
}

func TestGridFromCellsValidates(t *testing.T) {
	if _, err := GridFromCells(2, 2, []uint8{0, 1, 0}); !errors.Is(err, ErrBadDimensions) {
		t.Fatalf("expected ErrBadDimensions, got %v", err)
	}
	if _, err := GridFromCells(2, 1, []uint8{0, 2}); !errors.Is(err, ErrBadCell) {
		t.Fatalf("expected ErrBadCell, got %v", err)
	}

	cells := []uint8{0, 1, 1, 0}
	g, err := GridFromCells(2, 2, cells)
	if err != nil {
		t.Fatal(err)
	}
	cells[0] = 1
	if g.Alive(0, 0) {
		t.Fatal("grid must not alias the caller's slice")
	}
}

func TestGridRowsRoundTrip(t *testing.T) {
	rows := [][]bool{
		{false, true, false},
		{true, true, false},
	}
	g, err := GridFromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	if g.W != 3 || g.H != 2 {
		t.Fatalf("unexpected size %dx%d", g.W, g.H)
	}
	if g.Population() != 3 {
		t.Fatalf("population = %d, want 3", g.Population())
	}
	back, err := GridFromRows(g.Rows())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(g) {
		t.Fatal("Rows() did not reproduce the grid")
	}
}

func TestGridAliveOffGridIsDead(t *testing.T) {
	g := NewGrid(3, 3)
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if g.Alive(p[0], p[1]) {
			t.Fatalf("off-grid cell %v reported alive", p)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(1, 1, true)
	c := g.Clone()
	c.Set(2, 2, true)
	if g.Alive(2, 2) {
		t.Fatal("clone shares storage with original")
	}
	if !c.Alive(1, 1) {
		t.Fatal("clone lost original content")
	}
	if g.Equal(c) {
		t.Fatal("grids with different cells compared equal")
	}
}

func TestRandomGridDeterministic(t *testing.T) {
	a := RandomGrid(7, 32, 16, 0.3)
	b := RandomGrid(7, 32, 16, 0.3)
	if !a.Equal(b) {
		t.Fatal("same seed produced different grids")
	}
	if a.Equal(RandomGrid(8, 32, 16, 0.3)) {
		t.Fatal("different seeds should produce different grids")
	}
}
