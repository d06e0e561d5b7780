package gridio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"life-engine/internal/core"
	"life-engine/internal/reference"
)

func TestParsePadsRaggedLines(t *testing.T) {
	g, err := Parse(strings.NewReader(".X\nXXX\n\nX\n"))
	if err != nil {
		t.Fatal(err)
	}
	if g.W != 3 || g.H != 4 {
		t.Fatalf("size %dx%d, want 3x4", g.W, g.H)
	}
	want := [][]bool{
		{false, true, false},
		{true, true, true},
		{false, false, false},
		{true, false, false},
	}
	for y, row := range want {
		for x, alive := range row {
			if g.Alive(x, y) != alive {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, g.Alive(x, y), alive)
			}
		}
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	g, err := Parse(strings.NewReader("X.\r\n.X\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if g.W != 2 || g.H != 2 || g.Population() != 2 {
		t.Fatalf("unexpected grid %dx%d pop %d", g.W, g.H, g.Population())
	}
}

func TestParseRejectsUnknownCharacters(t *testing.T) {
	_, err := Parse(strings.NewReader("X.\n.O\n"))
	if !errors.Is(err, ErrUnexpectedChar) {
		t.Fatalf("expected ErrUnexpectedChar, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
	if _, err := Parse(strings.NewReader("\n\n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	g := core.RandomGrid(8, 17, 9, 0.4)
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatal(err)
	}
	back, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(g) {
		t.Fatal("round trip changed the grid")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinker.txt")
	if err := os.WriteFile(path, []byte("...\nXXX\n...\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Population() != 3 {
		t.Fatalf("population %d, want 3", g.Population())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestPadToWordsCentres(t *testing.T) {
	g := core.NewGrid(10, 70)
	g.Set(0, 0, true)
	g.Set(9, 69, true)
	out := PadToWords(g)
	if out.W != 128 || out.H != 128 {
		t.Fatalf("size %dx%d, want 128x128", out.W, out.H)
	}
	left, top := (128-10)/2, (128-70)/2
	if !out.Alive(left, top) || !out.Alive(left+9, top+69) || out.Population() != 2 {
		t.Fatal("content not centred")
	}

	aligned := core.RandomGrid(1, 64, 64, 0.5)
	same := PadToWords(aligned)
	if !same.Equal(aligned) || same == aligned {
		t.Fatal("aligned square should be copied unchanged")
	}
}

func TestAnimate(t *testing.T) {
	g, _ := Parse(strings.NewReader(".....\n.....\n.XXX.\n.....\n.....\n"))
	st := core.Engines()[reference.Name](1)

	var buf bytes.Buffer
	out, err := Animate(context.Background(), &buf, st, g, 3, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(reference.Run(g, 3)) {
		t.Fatal("animation ended on the wrong generation")
	}
	if n := strings.Count(buf.String(), clearScreen); n != 3 {
		t.Fatalf("drew %d frames, want 3", n)
	}
	if !strings.Contains(buf.String(), "..X..\n..X..\n..X..") {
		t.Fatal("second frame should show the vertical blinker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Animate(ctx, &buf, st, g, 10, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
