package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"life-engine/internal/config"
	"life-engine/internal/core"
	"life-engine/internal/gridio"
	"life-engine/internal/sim"
	"life-engine/internal/ui"
)

const (
	keyTPS     = "tps"
	keyDensity = "density"
)

var sessionControls = []ui.Control{
	{Key: keyTPS, Label: "Speed", Step: 5, Min: 1, Max: 240, Int: true},
	{Key: keyDensity, Label: "Density", Step: 0.05, Min: 0, Max: 1},
}

// Session owns the driver behind the viewer and the playback state the
// keyboard controls. It does no drawing.
type Session struct {
	cfg     config.Config
	log     logrus.FieldLogger
	initial *core.Grid
	driver  *sim.Driver

	seed     int64
	density  float64
	tps      int
	paused   bool
	tickOnce bool
	err      error

	pace *pacer
}

// NewSession prepares a session for the first configured engine. When
// initial is nil each reset draws a random grid of cfg.Random cells a side.
func NewSession(cfg config.Config, initial *core.Grid, log logrus.FieldLogger) (*Session, error) {
	engines := cfg.EngineList()
	if len(engines) == 0 {
		return nil, fmt.Errorf("app: no engine selected")
	}
	if initial == nil && cfg.Random <= 0 {
		return nil, fmt.Errorf("app: need an initial grid or a random size")
	}
	d, err := sim.New(cfg.Sim(engines[0]), sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		log:     log,
		initial: initial,
		driver:  d,
		seed:    cfg.Seed,
		density: cfg.Density,
		tps:     cfg.TPS,
		pace:    newPacer(cfg.TPS),
	}
	if err := s.Reset(s.seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) startGrid(seed int64) *core.Grid {
	g := s.initial
	if g == nil {
		g = core.RandomGrid(seed, s.cfg.Random, s.cfg.Random, s.density)
	}
	if s.cfg.Sim(s.driver.Engine()).Aligned() {
		return gridio.PadToWords(g)
	}
	return g
}

// Reset restarts the run from generation zero. Random grids are redrawn
// from seed.
func (s *Session) Reset(seed int64) error {
	s.seed = seed
	s.tickOnce = false
	s.err = nil
	iterations := s.cfg.Iterations
	if iterations <= 0 {
		iterations = sim.Forever
	}
	if err := s.driver.Start(s.startGrid(seed), iterations); err != nil {
		s.err = err
		return err
	}
	s.log.WithField("seed", seed).Info("run started")
	return nil
}

// TogglePause pauses or resumes stepping.
func (s *Session) TogglePause() { s.paused = !s.paused }

// Resume clears the pause.
func (s *Session) Resume() { s.paused = false }

// StepOnce advances a single generation on the next Tick, even when paused.
func (s *Session) StepOnce() { s.tickOnce = true }

// Tick advances one generation unless the run is paused, finished or failed.
func (s *Session) Tick() {
	if s.paused && !s.tickOnce {
		return
	}
	s.tickOnce = false
	if s.driver.State() != sim.Stepping {
		return
	}
	if err := s.driver.Step(); err != nil {
		s.err = err
		s.log.WithError(err).Error("step failed")
	}
}

// Advance runs the generations owed at the current speed. A pending
// single step runs even when no generation is due.
func (s *Session) Advance() {
	n := s.pace.due()
	if s.tickOnce {
		n = max(n, 1)
	}
	for ; n > 0; n-- {
		s.Tick()
	}
}

// Grid returns the current generation.
func (s *Session) Grid() *core.Grid { return s.driver.Grid() }

// Err reports the error that stopped the run, if any.
func (s *Session) Err() error { return s.err }

// Seed returns the seed of the current run.
func (s *Session) Seed() int64 { return s.seed }

// TPS returns the requested generations per second.
func (s *Session) TPS() int { return s.tps }

// Status implements ui.Source.
func (s *Session) Status() ui.Status {
	st := ui.Status{
		Engine:     s.driver.Engine(),
		State:      s.driver.State().String(),
		Generation: s.driver.Generation(),
		Growths:    s.driver.Growths(),
		Paused:     s.paused,
	}
	if g := s.driver.Grid(); g != nil {
		st.Width, st.Height, st.Population = g.W, g.H, g.Population()
	}
	return st
}

// Controls implements ui.Source.
func (s *Session) Controls() []ui.Control { return sessionControls }

// Value implements ui.Source.
func (s *Session) Value(key string) (float64, bool) {
	switch key {
	case keyTPS:
		return float64(s.tps), true
	case keyDensity:
		return s.density, s.initial == nil
	}
	return 0, false
}

// SetValue implements ui.Source. Density applies from the next reseed.
func (s *Session) SetValue(key string, v float64) bool {
	switch key {
	case keyTPS:
		s.tps = int(v)
		s.pace.setTPS(s.tps)
		return true
	case keyDensity:
		if s.initial != nil {
			return false
		}
		s.density = v
		return true
	}
	return false
}
