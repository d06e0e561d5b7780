// Package ui draws the viewer's side panel.
package ui

import (
	"fmt"
	"math"
	"strconv"
)

// Status is a snapshot of the running simulation shown in the panel.
type Status struct {
	Engine     string
	State      string
	Generation int
	Width      int
	Height     int
	Population int
	Growths    int
	Paused     bool
}

// Lines formats s for display, one entry per panel row.
func (s Status) Lines() []string {
	state := s.State
	if s.Paused && state == "stepping" {
		state = "paused"
	}
	lines := []string{
		"Engine     " + s.Engine,
		"State      " + state,
		"Generation " + strconv.Itoa(s.Generation),
		fmt.Sprintf("Size       %dx%d", s.Width, s.Height),
		"Population " + strconv.Itoa(s.Population),
	}
	if s.Growths > 0 {
		lines = append(lines, "Growths    "+strconv.Itoa(s.Growths))
	}
	return lines
}

// Control describes a numeric setting adjustable from the panel.
type Control struct {
	Key   string
	Label string
	Step  float64
	Min   float64
	Max   float64
	Int   bool
}

// Adjust returns v moved by dir steps and clamped to the control range.
func (c Control) Adjust(v float64, dir int) float64 {
	step := c.Step
	if step <= 0 {
		step = 1
	}
	v += float64(dir) * step
	if c.Int {
		v = math.Round(v)
	}
	return math.Min(c.Max, math.Max(c.Min, v))
}

// CanAdjust reports whether a step in dir would change v.
func (c Control) CanAdjust(v float64, dir int) bool {
	return math.Abs(c.Adjust(v, dir)-v) > 1e-9
}

// Format renders v with a precision that fits the step size.
func (c Control) Format(v float64) string {
	if c.Int {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch {
	case c.Step < 0.001:
		precision = 4
	case c.Step < 0.01:
		precision = 3
	case c.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Source supplies the panel with status and adjustable values.
type Source interface {
	Status() Status
	Controls() []Control
	Value(key string) (float64, bool)
	SetValue(key string, v float64) bool
}
