package growth

import (
	"errors"
	"testing"

	"life-engine/internal/bitboard"
	"life-engine/internal/core"
)

func TestNextSizeIsSmallestMultipleAbovePadding(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct{ s, size, off int }{
		{64, 128, 32},
		{128, 192, 32},
		{62, 64, 1},
		{63, 128, 32},
	}
	for _, tc := range cases {
		size, off := p.NextSize(tc.s)
		if size != tc.size || off != tc.off {
			t.Fatalf("NextSize(%d) = (%d,%d), want (%d,%d)", tc.s, size, off, tc.size, tc.off)
		}
		if size%Align != 0 || size < tc.s+2 {
			t.Fatalf("NextSize(%d) = %d violates alignment or padding", tc.s, size)
		}
	}
}

func TestNoGrowthWhenCentreOnly(t *testing.T) {
	g := core.NewGrid(64, 64)
	g.Set(32, 32, true)
	g.Set(5, 5, true) // first cell outside every band
	d, err := DefaultPolicy().Decide(g)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != NoGrowthNeeded || d.Size != 64 {
		t.Fatalf("unexpected decision %+v", d)
	}
	if Apply(g, d) != g {
		t.Fatal("Apply with NoGrowthNeeded should return the grid unchanged")
	}
}

func TestGrowthTriggeredByEachBand(t *testing.T) {
	cells := map[string][2]int{
		"top":    {30, 0},
		"top-4":  {30, 4},
		"bottom": {30, 63},
		"left":   {0, 30},
		"right":  {63, 30},
		"right4": {59, 30},
	}
	for name, c := range cells {
		g := core.NewGrid(64, 64)
		g.Set(c[0], c[1], true)
		d, err := DefaultPolicy().Decide(g)
		if err != nil {
			t.Fatal(err)
		}
		if d.Kind != GrowTo || d.Size != 128 || d.Offset != 32 {
			t.Fatalf("%s: unexpected decision %+v", name, d)
		}
	}
}

func TestGrowPreservesContent(t *testing.T) {
	g := core.RandomGrid(4, 64, 64, 0.2)
	d, err := DefaultPolicy().Decide(g)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != GrowTo {
		t.Fatal("random fill should reach the margin")
	}
	out := Apply(g, d)
	if out.W != d.Size || out.H != d.Size {
		t.Fatalf("grown grid is %dx%d, want %d", out.W, out.H, d.Size)
	}
	if out.Population() != g.Population() {
		t.Fatalf("population %d, want %d", out.Population(), g.Population())
	}
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			want := g.Alive(x-d.Offset, y-d.Offset)
			if out.Alive(x, y) != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, out.Alive(x, y), want)
			}
		}
	}
}

func TestBoardGrowthMatchesGridGrowth(t *testing.T) {
	p := Policy{Margin: 3, Pad: 1}
	for _, s := range []int{64, 128} {
		g := core.RandomGrid(int64(s), s, s, 0.25)
		b, err := bitboard.FromGrid(g)
		if err != nil {
			t.Fatal(err)
		}
		dg, err := p.Decide(g)
		if err != nil {
			t.Fatal(err)
		}
		db, err := p.DecideBoard(b)
		if err != nil {
			t.Fatal(err)
		}
		if dg != db {
			t.Fatalf("grid decision %+v, board decision %+v", dg, db)
		}
		grown, err := ApplyBoard(b, db)
		if err != nil {
			t.Fatal(err)
		}
		if !grown.ToGrid().Equal(Apply(g, dg)) {
			t.Fatalf("size %d: board growth differs from grid growth", s)
		}
	}
}

func TestBoardBandScanAcrossWords(t *testing.T) {
	p := Policy{Margin: 5, Pad: 1}
	b, _ := bitboard.NewBoard(128, 128)
	b.Set(64, 60, true) // interior column at a word start
	d, err := p.DecideBoard(b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != NoGrowthNeeded {
		t.Fatalf("interior cell triggered growth: %+v", d)
	}
	b.Set(123, 60, true) // column 123 is inside the right band (>= 128-5)
	d, err = p.DecideBoard(b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != GrowTo {
		t.Fatalf("right band cell missed: %+v", d)
	}
}

func TestTinyGridAnyLiveCellGrows(t *testing.T) {
	// With a margin of 40 on a 64 grid the top and bottom bands overlap,
	// so even the centre cell counts as near the edge.
	p := Policy{Margin: 40, Pad: 1}
	g := core.NewGrid(64, 64)
	d, err := p.Decide(g)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != NoGrowthNeeded {
		t.Fatal("empty grid should never grow")
	}
	g.Set(32, 32, true)
	if d, _ = p.Decide(g); d.Kind != GrowTo {
		t.Fatal("live cell in an all-band grid should trigger growth")
	}
}

func TestZeroMarginNeverGrows(t *testing.T) {
	g := core.NewGrid(64, 64)
	g.Set(0, 0, true)
	d, err := Policy{Margin: 0, Pad: 1}.Decide(g)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != NoGrowthNeeded {
		t.Fatal("zero margin must not trigger growth")
	}
}

func TestPreconditions(t *testing.T) {
	p := DefaultPolicy()
	if _, err := p.Decide(core.NewGrid(64, 128)); !errors.Is(err, ErrNotSquare) {
		t.Fatalf("expected ErrNotSquare, got %v", err)
	}
	if _, err := p.Decide(core.NewGrid(60, 60)); !errors.Is(err, ErrNotAligned) {
		t.Fatalf("expected ErrNotAligned, got %v", err)
	}
	if _, err := (Policy{Margin: 1}).Decide(core.NewGrid(64, 64)); !errors.Is(err, ErrBadPolicy) {
		t.Fatalf("expected ErrBadPolicy for zero pad, got %v", err)
	}
}

func TestGrowthLimit(t *testing.T) {
	g := core.NewGrid(64, 64)
	g.Set(0, 0, true)
	_, err := Policy{Margin: 5, Pad: 1, MaxSize: 64}.Decide(g)
	if !errors.Is(err, ErrGrowthLimit) {
		t.Fatalf("expected ErrGrowthLimit, got %v", err)
	}
}

func TestKindString(t *testing.T) {
	if GrowTo.String() != "grow" || NoGrowthNeeded.String() != "no-growth" {
		t.Fatal("unexpected Kind strings")
	}
}
