//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"life-engine/internal/app"
	"life-engine/internal/config"
	"life-engine/internal/core"
	"life-engine/internal/gridio"
)

const hudWidth = 240

func main() {
	cfg := config.DefaultConfig()
	cfg.Iterations = 0
	cfg.Random = 128
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	log := config.NewLogger(os.Stderr, cfg.LogLevel)

	var initial *core.Grid
	if cfg.Input != "" {
		g, err := gridio.Load(cfg.Input)
		if err != nil {
			log.WithError(err).Fatal("cannot load grid")
		}
		initial = g
	}

	s, err := app.NewSession(cfg, initial, log)
	if err != nil {
		log.WithError(err).Fatal("cannot start session")
	}
	g := s.Grid()
	side := max(g.W, g.H) * max(cfg.Scale, 1)
	game := app.New(s, side, hudWidth)

	ebiten.SetWindowTitle("life - " + s.Status().Engine)
	ebiten.SetTPS(ebiten.DefaultTPS)
	ebiten.SetWindowSize(side+hudWidth, side)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("viewer stopped")
	}
}
