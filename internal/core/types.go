package core

import "sort"

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Stepper advances a grid by one generation. Implementations must not mutate
// the input grid.
type Stepper interface {
	Name() string
	Step(g *Grid) (*Grid, error)
}

// Factory constructs a Stepper. workers is the requested degree of
// parallelism; serial engines ignore it.
type Factory func(workers int) Stepper

var engines = map[string]Factory{}

// Register adds a stepper factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available stepper factories.
func Engines() map[string]Factory {
	return engines
}

// EngineNames lists registered engines in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
