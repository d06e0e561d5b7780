//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"life-engine/internal/render"
)

var bandPalette = []color.RGBA{{}, {R: 255, G: 120, B: 40, A: 70}}

// Overlay tints the edge bands whose live cells trigger growth. Press B to
// toggle it.
type Overlay struct {
	margin  int
	show    bool
	painter *render.GridPainter

	maskW, maskH int
	mask         []uint8
}

// NewOverlay constructs an overlay for the given growth margin.
func NewOverlay(margin int) *Overlay {
	return &Overlay{margin: margin}
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.show = !o.show
	}
}

// Draw tints the bands of a w×h grid drawn side pixels wide.
func (o *Overlay) Draw(screen *ebiten.Image, w, h, side int) {
	if !o.show || o.margin <= 0 || w <= 0 || h <= 0 {
		return
	}
	if o.mask == nil || o.maskW != w || o.maskH != h {
		o.mask = render.BandMask(w, h, o.margin)
		o.maskW, o.maskH = w, h
	}
	if o.painter == nil {
		o.painter = render.NewGridPainter(w, h)
	}
	o.painter.BlitMask(screen, w, h, o.mask, bandPalette, side)
}
