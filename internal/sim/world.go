package sim

import (
	"life-engine/internal/bitboard"
	"life-engine/internal/core"
	"life-engine/internal/growth"
	"life-engine/internal/padded"
)

// world is the engine-native state owned by a Driver between generations.
type world interface {
	step() error
	grow(p growth.Policy) (growth.Decision, error)
	width() int
	grid() *core.Grid
}

// gridWorld steps an unpacked grid through a registered Stepper, building
// fresh buffers each generation.
type gridWorld struct {
	g  *core.Grid
	st core.Stepper
}

func (w *gridWorld) step() error {
	next, err := w.st.Step(w.g)
	if err != nil {
		return err
	}
	w.g = next
	return nil
}

func (w *gridWorld) grow(p growth.Policy) (growth.Decision, error) {
	d, err := p.Decide(w.g)
	if err != nil {
		return d, err
	}
	w.g = growth.Apply(w.g, d)
	return d, nil
}

func (w *gridWorld) width() int { return w.g.W }

func (w *gridWorld) grid() *core.Grid { return w.g.Clone() }

// paddedWorld keeps the padded double buffers alive across generations.
// It is only used when the grid never changes size.
type paddedWorld struct {
	k *padded.Kernel
}

func (w *paddedWorld) step() error { return w.k.Step() }

func (w *paddedWorld) grow(growth.Policy) (growth.Decision, error) {
	return growth.Decision{Kind: growth.NoGrowthNeeded, Size: w.width()}, nil
}

func (w *paddedWorld) width() int { return w.k.Current().Size().W }

func (w *paddedWorld) grid() *core.Grid { return w.k.Grid() }

// boardWorld keeps the grid bit-packed for the whole run.
type boardWorld struct {
	k *bitboard.Kernel
}

func (w *boardWorld) step() error { return w.k.Step() }

func (w *boardWorld) grow(p growth.Policy) (growth.Decision, error) {
	d, err := p.DecideBoard(w.k.Current())
	if err != nil || d.Kind != growth.GrowTo {
		return d, err
	}
	b, err := growth.ApplyBoard(w.k.Current(), d)
	if err != nil {
		return d, err
	}
	w.k.Reset(b)
	return d, nil
}

func (w *boardWorld) width() int { return w.k.Current().Width() }

func (w *boardWorld) grid() *core.Grid { return w.k.Current().ToGrid() }
