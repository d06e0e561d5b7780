//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"life-engine/internal/core"
)

// GridPainter uploads grids into a single RGBA image. The image is
// reallocated when the grid changes size.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a w×h grid.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{}
	gp.resize(w, h)
	return gp
}

func (gp *GridPainter) resize(w, h int) {
	if gp.img != nil && gp.w == w && gp.h == h {
		return
	}
	if gp.img != nil {
		gp.img.Dispose()
	}
	gp.w, gp.h = w, h
	gp.img = ebiten.NewImage(w, h)
	gp.buf = make([]byte, 4*w*h)
}

// Blit draws g onto dst, scaled so that the grid spans side pixels.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.Grid, on, off color.Color, side int) {
	gp.resize(g.W, g.H)
	FillCells(gp.buf, g, on, off)
	gp.img.WritePixels(gp.buf)
	gp.draw(dst, side)
}

// BlitMask draws a w×h mask onto dst using palette.
func (gp *GridPainter) BlitMask(dst *ebiten.Image, w, h int, mask []uint8, palette []color.RGBA, side int) {
	if len(mask) != w*h {
		return
	}
	gp.resize(w, h)
	FillMask(gp.buf, mask, palette)
	gp.img.WritePixels(gp.buf)
	gp.draw(dst, side)
}

func (gp *GridPainter) draw(dst *ebiten.Image, side int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(side)/float64(gp.w), float64(side)/float64(gp.h))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
