//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status panel to the right of the grid view.
type HUD struct {
	src        Source
	width      int
	panel      *ebiten.Image
	lastHeight int
	status     Status

	controls     []hudControlState
	panelOffsetX int

	pixel *ebiten.Image
}

type hudControlState struct {
	control Control
	value   float64
	ok      bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(src Source, width int) *HUD {
	h := &HUD{src: src, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	for _, c := range src.Controls() {
		h.controls = append(h.controls, hudControlState{control: c})
	}
	h.layoutControls()
	return h
}

// Update refreshes the status snapshot and handles clicks on the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.status = h.src.Status()
	for i := range h.controls {
		st := &h.controls[i]
		st.value, st.ok = h.src.Value(st.control.Key)
	}
	h.handleInput()
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStatus()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		st := &h.controls[i]
		if !st.ok {
			continue
		}
		dir := 0
		switch {
		case image.Pt(px, my).In(st.minusRect):
			dir = -1
		case image.Pt(px, my).In(st.plusRect):
			dir = 1
		default:
			continue
		}
		if !st.control.CanAdjust(st.value, dir) {
			return
		}
		target := st.control.Adjust(st.value, dir)
		if h.src.SetValue(st.control.Key, target) {
			st.value = target
		}
		return
	}
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Life", face, panelPadding, y, titleColor)
	for _, line := range h.status.Lines() {
		y += statusSpacing
		text.Draw(h.panel, line, face, panelPadding, y, textColor)
	}
	y = h.lastHeight - panelPadding
	text.Draw(h.panel, "space pause  n step  r reset", face, panelPadding, y-statusSpacing, dimColor)
	text.Draw(h.panel, "s reseed  b bands  q quit", face, panelPadding, y, dimColor)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		st := &h.controls[i]
		labelY := st.top + labelBaseline
		text.Draw(h.panel, st.control.Label, face, panelPadding, labelY, textColor)

		value, col := "--", dimColor
		if st.ok {
			value, col = st.control.Format(st.value), textColor
		}
		bounds := text.BoundString(face, value)
		text.Draw(h.panel, value, face, st.minusRect.Min.X-buttonGap-bounds.Dx(), labelY, col)

		h.drawButton(st.minusRect, "-", st.ok && st.control.CanAdjust(st.value, -1))
		h.drawButton(st.plusRect, "+", st.ok && st.control.CanAdjust(st.value, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	statusSpacing  = 18
	controlsTop    = panelPadding + headerBaseline + 7*statusSpacing + 14
)
