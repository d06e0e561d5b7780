package app

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"life-engine/internal/config"
	"life-engine/internal/core"
	"life-engine/internal/growth"
	"life-engine/internal/reference"
	"life-engine/internal/sim"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func randomConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Iterations = 0
	cfg.Random = 40
	cfg.Engines = "bitboard"
	return cfg
}

func TestSessionPadsRandomGridForBitboard(t *testing.T) {
	s, err := NewSession(randomConfig(), nil, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	g := s.Grid()
	if g.W != 64 || g.H != 64 {
		t.Fatalf("grid %dx%d, want 64x64", g.W, g.H)
	}
	want := core.RandomGrid(42, 40, 40, 0.3).Population()
	if g.Population() != want {
		t.Fatalf("population %d, want %d", g.Population(), want)
	}
}

func TestSessionPauseAndStepOnce(t *testing.T) {
	blinker := core.NewGrid(5, 5)
	blinker.Set(1, 2, true)
	blinker.Set(2, 2, true)
	blinker.Set(3, 2, true)
	cfg := randomConfig()
	cfg.Engines = "padded"
	s, err := NewSession(cfg, blinker, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	s.TogglePause()
	s.Tick()
	if s.Status().Generation != 0 || !s.Status().Paused {
		t.Fatal("paused session must not step")
	}
	s.StepOnce()
	s.Tick()
	s.Tick()
	if got := s.Status().Generation; got != 1 {
		t.Fatalf("generation %d after a single step, want 1", got)
	}
	s.Resume()
	s.Tick()
	if !s.Grid().Equal(reference.Run(blinker, 2)) {
		t.Fatal("resumed session out of step with reference")
	}

	if err := s.Reset(s.Seed()); err != nil {
		t.Fatal(err)
	}
	if s.Status().Generation != 0 || !s.Grid().Equal(blinker) {
		t.Fatal("reset should restore the initial grid")
	}
}

func TestSessionStopsAtIterationLimit(t *testing.T) {
	cfg := randomConfig()
	cfg.Iterations = 3
	s, err := NewSession(cfg, nil, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	st := s.Status()
	if st.Generation != 3 || st.State != sim.Done.String() {
		t.Fatalf("generation %d state %s, want 3 done", st.Generation, st.State)
	}
}

func TestSessionReportsGrowthFailure(t *testing.T) {
	g := core.NewGrid(64, 64)
	g.Set(0, 0, true)
	cfg := randomConfig()
	cfg.Growth = true
	cfg.MaxSize = 64
	logger, hook := logtest.NewNullLogger()
	s, err := NewSession(cfg, g, logger)
	if err != nil {
		t.Fatal(err)
	}
	s.Tick()
	if !errors.Is(s.Err(), growth.ErrGrowthLimit) {
		t.Fatalf("expected ErrGrowthLimit, got %v", s.Err())
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.ErrorLevel {
		t.Fatal("step failure should be logged at error level")
	}
	s.Tick()
	if s.Status().Generation != 0 {
		t.Fatal("failed session must not advance")
	}
}

func TestSessionControls(t *testing.T) {
	s, err := NewSession(randomConfig(), nil, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if !s.SetValue(keyTPS, 40) || s.TPS() != 40 || s.pace.step != 25*time.Millisecond {
		t.Fatalf("tps not applied: session %d, pace %s", s.TPS(), s.pace.step)
	}
	if !s.SetValue(keyDensity, 0) {
		t.Fatal("density should be adjustable for random grids")
	}
	if err := s.Reset(7); err != nil {
		t.Fatal(err)
	}
	if s.Grid().Population() != 0 {
		t.Fatal("zero density reseed should be empty")
	}
	if s.SetValue("nope", 1) {
		t.Fatal("unknown key accepted")
	}

	fixed, err := NewSession(randomConfig(), core.NewGrid(64, 64), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fixed.Value(keyDensity); ok || fixed.SetValue(keyDensity, 0.5) {
		t.Fatal("density does not apply to loaded grids")
	}
}

func TestNewSessionErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := NewSession(cfg, nil, quietLogger()); err == nil {
		t.Fatal("missing grid source should fail")
	}
	cfg.Random = 16
	cfg.Engines = "warp"
	if _, err := NewSession(cfg, nil, quietLogger()); !errors.Is(err, sim.ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}
}

func TestSessionAdvanceFollowsPace(t *testing.T) {
	cfg := randomConfig()
	cfg.TPS = 10
	s, err := NewSession(cfg, nil, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Unix(0, 0)
	s.pace.now = func() time.Time { return now }
	s.pace.accumulator = 0

	s.Advance()
	if s.Status().Generation != 0 {
		t.Fatal("no generation is due on the first frame")
	}
	now = now.Add(250 * time.Millisecond)
	s.Advance()
	if got := s.Status().Generation; got != 2 {
		t.Fatalf("generation %d after 250ms at 10/s, want 2", got)
	}

	s.TogglePause()
	s.StepOnce()
	s.Advance()
	if got := s.Status().Generation; got != 3 {
		t.Fatalf("single step while paused gave generation %d, want 3", got)
	}
}

func TestPacerCapsCatchUp(t *testing.T) {
	now := time.Unix(0, 0)
	p := newPacer(100)
	p.now = func() time.Time { return now }
	p.accumulator = 0
	p.due()
	now = now.Add(5 * time.Second)
	if n := p.due(); n != maxCatchUp {
		t.Fatalf("due %d after a stall, want %d", n, maxCatchUp)
	}
	now = now.Add(10 * time.Millisecond)
	if n := p.due(); n != 1 {
		t.Fatalf("due %d, want 1", n)
	}
	p.setTPS(0)
	if p.step != time.Second/30 {
		t.Fatalf("non-positive rate should fall back to 30/s, got %s", p.step)
	}
}
