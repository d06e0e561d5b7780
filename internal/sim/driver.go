// Package sim composes a step engine with an optional growth policy and
// runs it for a number of generations.
package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"life-engine/internal/bitboard"
	"life-engine/internal/core"
	"life-engine/internal/growth"
	"life-engine/internal/padded"
	_ "life-engine/internal/reference" // registers the reference engine
)

// Forever makes Start step without a generation limit.
const Forever = -1

var (
	// ErrUnknownEngine reports an engine name missing from the registry.
	ErrUnknownEngine = errors.New("sim: unknown engine")
	// ErrNotStepping reports Step called outside the Stepping state.
	ErrNotStepping = errors.New("sim: driver is not stepping")
	// ErrEngineMismatch reports a board run on a non-bitboard engine.
	ErrEngineMismatch = errors.New("sim: engine does not operate on bitboards")
)

// State is the driver lifecycle.
type State int

const (
	Idle State = iota
	Stepping
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config selects the engine and growth behaviour of a Driver.
type Config struct {
	Engine  string
	Workers int
	Growth  bool
	Policy  growth.Policy
}

// DefaultConfig returns a serial padded engine without growth.
func DefaultConfig() Config {
	return Config{Engine: padded.Name, Policy: growth.DefaultPolicy()}
}

// Aligned reports whether the configuration needs a grid whose width is a
// multiple of 64, and a square one when growth is on.
func (c Config) Aligned() bool {
	return c.Growth || isBoardEngine(c.Engine)
}

// Option customises a Driver.
type Option func(*Driver)

// WithLogger routes driver logs to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// Driver runs one engine over a grid it exclusively owns. It is not safe
// for concurrent use; parallelism happens inside each generation.
type Driver struct {
	cfg Config
	log logrus.FieldLogger

	state      State
	w          world
	generation int
	remaining  int
	grown      int
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New validates cfg and returns an idle driver.
func New(cfg Config, opts ...Option) (*Driver, error) {
	if _, ok := core.Engines()[cfg.Engine]; !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownEngine, cfg.Engine, core.EngineNames())
	}
	if cfg.Growth {
		if err := cfg.Policy.Validate(); err != nil {
			return nil, err
		}
	}
	d := &Driver{cfg: cfg, log: discardLogger()}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.WithField("engine", cfg.Engine)
	return d, nil
}

func isBoardEngine(name string) bool {
	return name == bitboard.Name || name == bitboard.ParallelName
}

func (d *Driver) newWorld(g *core.Grid) (world, error) {
	name := d.cfg.Engine
	switch {
	case isBoardEngine(name):
		b, err := bitboard.FromGrid(g)
		if err != nil {
			return nil, err
		}
		return d.newBoardWorld(b), nil
	case name == padded.Name && !d.cfg.Growth:
		return &paddedWorld{k: padded.NewKernel(g)}, nil
	case name == padded.ParallelName && !d.cfg.Growth:
		return &paddedWorld{k: padded.NewParallelKernel(g, d.cfg.Workers)}, nil
	}
	return &gridWorld{g: g.Clone(), st: core.Engines()[name](d.cfg.Workers)}, nil
}

func (d *Driver) newBoardWorld(b *bitboard.Board) *boardWorld {
	if d.cfg.Engine == bitboard.ParallelName {
		return &boardWorld{k: bitboard.NewParallelKernel(b, d.cfg.Workers)}
	}
	return &boardWorld{k: bitboard.NewKernel(b)}
}

// Start takes a copy of g and prepares to run the given number of
// generations (Forever for no limit), discarding any previous run.
// Preconditions are checked here, before any generation is computed.
func (d *Driver) Start(g *core.Grid, iterations int) error {
	if d.cfg.Growth {
		if err := growth.CheckSize(g.W, g.H); err != nil {
			return err
		}
	}
	w, err := d.newWorld(g)
	if err != nil {
		return err
	}
	d.begin(w, iterations)
	return nil
}

func (d *Driver) begin(w world, iterations int) {
	d.w = w
	d.generation = 0
	d.grown = 0
	d.remaining = iterations
	d.state = Stepping
	if iterations == 0 {
		d.state = Done
	}
}

// Step advances one generation: it applies the growth policy when enabled
// and then the engine. A failed step leaves the current grid untouched and
// moves the driver to Failed.
func (d *Driver) Step() error {
	if d.state != Stepping {
		return fmt.Errorf("%w: state %s", ErrNotStepping, d.state)
	}
	if d.cfg.Growth {
		from := d.w.width()
		dec, err := d.w.grow(d.cfg.Policy)
		if err != nil {
			d.state = Failed
			return fmt.Errorf("sim: generation %d: %w", d.generation+1, err)
		}
		if dec.Kind == growth.GrowTo {
			d.grown++
			d.log.WithFields(logrus.Fields{
				"generation": d.generation,
				"from":       from,
				"to":         dec.Size,
				"offset":     dec.Offset,
			}).Debug("grid grown")
		}
	}
	if err := d.w.step(); err != nil {
		d.state = Failed
		return fmt.Errorf("sim: generation %d: %w", d.generation+1, err)
	}
	d.generation++
	if d.remaining > 0 {
		d.remaining--
		if d.remaining == 0 {
			d.state = Done
		}
	}
	return nil
}

func (d *Driver) finish() error {
	for d.state == Stepping {
		if err := d.Step(); err != nil {
			return err
		}
	}
	d.log.WithFields(logrus.Fields{
		"generations": d.generation,
		"width":       d.w.width(),
		"growths":     d.grown,
	}).Debug("run complete")
	return nil
}

// Run advances g by the given number of generations.
func (d *Driver) Run(g *core.Grid, iterations int) (*core.Grid, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("sim: negative iteration count %d", iterations)
	}
	if err := d.Start(g, iterations); err != nil {
		return nil, err
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return d.Grid(), nil
}

// RunGrowable is Run for growth-capable configurations; it also returns the
// final width.
func (d *Driver) RunGrowable(g *core.Grid, iterations int) (*core.Grid, int, error) {
	out, err := d.Run(g, iterations)
	if err != nil {
		return nil, 0, err
	}
	return out, out.W, nil
}

// RunBoard advances a packed board without unpacking it. The driver must be
// configured with a bitboard engine.
func (d *Driver) RunBoard(b *bitboard.Board, iterations int) (*bitboard.Board, error) {
	if !isBoardEngine(d.cfg.Engine) {
		return nil, fmt.Errorf("%w: %q", ErrEngineMismatch, d.cfg.Engine)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("sim: negative iteration count %d", iterations)
	}
	if d.cfg.Growth {
		if err := growth.CheckSize(b.Width(), b.Height()); err != nil {
			return nil, err
		}
	}
	w := d.newBoardWorld(b)
	d.begin(w, iterations)
	if err := d.finish(); err != nil {
		return nil, err
	}
	return w.k.Board(), nil
}

// State reports the lifecycle state.
func (d *Driver) State() State { return d.state }

// Generation reports the number of completed generations since Start.
func (d *Driver) Generation() int { return d.generation }

// Growths reports how many times the grid grew since Start.
func (d *Driver) Growths() int { return d.grown }

// Width reports the current grid width, or 0 before Start.
func (d *Driver) Width() int {
	if d.w == nil {
		return 0
	}
	return d.w.width()
}

// Grid returns a copy of the current generation, or nil before Start.
func (d *Driver) Grid() *core.Grid {
	if d.w == nil {
		return nil
	}
	return d.w.grid()
}

// Engine returns the configured engine name.
func (d *Driver) Engine() string { return d.cfg.Engine }
