// Package render converts grids into RGBA pixel buffers for the viewer.
package render

import (
	"image/color"

	"life-engine/internal/core"
)

// FillCells writes one RGBA pixel per cell of g into buf, which must hold
// 4*g.W*g.H bytes.
func FillCells(buf []byte, g *core.Grid, on, off color.Color) {
	fillBinaryRGBA(buf, g.Cells(), on, off)
}

func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	pOn, pOff := rgba(on), rgba(off)
	for i, c := range cells {
		px := pOff
		if c != 0 {
			px = pOn
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}

func rgba(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// FillMask converts mask values into pixels using palette. Values past the
// end of the palette use its last colour; an empty palette clears buf.
func FillMask(buf []byte, mask []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(mask)])
		return
	}
	last := len(palette) - 1
	for i, m := range mask {
		col := palette[min(int(m), last)]
		buf[i*4+0] = col.R
		buf[i*4+1] = col.G
		buf[i*4+2] = col.B
		buf[i*4+3] = col.A
	}
}

// BandMask marks the cells of a w×h grid that lie within margin of any
// edge, the region whose live cells make the grid grow.
func BandMask(w, h, margin int) []uint8 {
	mask := make([]uint8, w*h)
	if margin <= 0 {
		return mask
	}
	for y := 0; y < h; y++ {
		row := mask[y*w : (y+1)*w]
		if y < margin || y >= h-margin {
			for x := range row {
				row[x] = 1
			}
			continue
		}
		for x := 0; x < min(margin, w); x++ {
			row[x] = 1
			row[w-1-x] = 1
		}
	}
	return mask
}
