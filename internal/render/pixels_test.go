package render

import (
	"image/color"
	"testing"

	"life-engine/internal/core"
)

func TestFillCells(t *testing.T) {
	g := core.NewGrid(3, 1)
	g.Set(1, 0, true)
	buf := make([]byte, 12)
	FillCells(buf, g, color.White, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	want := []byte{10, 20, 30, 255, 255, 255, 255, 255, 10, 20, 30, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func TestFillMaskClampsAndClears(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	FillMask(buf, []uint8{0, 7}, []color.RGBA{{A: 0}, {R: 200, A: 80}})
	if buf[3] != 0 || buf[4] != 200 || buf[7] != 80 {
		t.Fatalf("unexpected pixels %v", buf)
	}
	FillMask(buf, []uint8{1, 1}, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette should clear, got %v", buf)
		}
	}
}

func TestBandMask(t *testing.T) {
	const w, h, m = 12, 10, 2
	mask := BandMask(w, h, m)
	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inBand := y < m || y >= h-m || x < m || x >= w-m
			if (mask[y*w+x] == 1) != inBand {
				t.Fatalf("cell (%d,%d) mask %d, band %v", x, y, mask[y*w+x], inBand)
			}
			if inBand {
				count++
			}
		}
	}
	if count != w*h-(w-2*m)*(h-2*m) {
		t.Fatalf("band covers %d cells", count)
	}
	for _, v := range BandMask(4, 4, 0) {
		if v != 0 {
			t.Fatal("zero margin should mark nothing")
		}
	}
}
