//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"life-engine/internal/render"
	"life-engine/internal/ui"
)

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	s       *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	side     int
	hudWidth int
}

// New constructs a Game that draws the grid side pixels wide with a
// status panel of hudWidth pixels to its right.
func New(s *Session, side, hudWidth int) *Game {
	g := s.Grid()
	return &Game{
		s:        s,
		painter:  render.NewGridPainter(g.W, g.H),
		overlay:  ui.NewOverlay(s.cfg.Margin),
		hud:      ui.NewHUD(s, hudWidth),
		onColor:  color.White,
		offColor: color.Black,
		side:     side,
		hudWidth: hudWidth,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.s.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.s.Resume()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.s.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.s.Reset(g.s.Seed()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.s.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}

	g.overlay.Update()
	g.hud.Update(g.side)
	g.s.Advance()
	return nil
}

// Draw renders the current generation, the band overlay and the panel.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.s.Grid()
	g.painter.Blit(screen, grid, g.onColor, g.offColor, g.side)
	g.overlay.Draw(screen, grid.W, grid.H, g.side)
	g.hud.Draw(screen, g.side, g.side)
}

// Layout returns the logical screen size. Growing grids shrink their cells
// rather than the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.side + g.hudWidth, g.side
}
