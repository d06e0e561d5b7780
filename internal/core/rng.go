package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Fill sets each cell of g alive with probability density.
func (r *RNG) Fill(g *Grid, density float64) {
	cells := g.Cells()
	for i := range cells {
		cells[i] = 0
		if r.r.Float64() < density {
			cells[i] = 1
		}
	}
}

// RandomGrid returns a w×h grid seeded with the given density.
func RandomGrid(seed int64, w, h int, density float64) *Grid {
	g := NewGrid(w, h)
	NewRNG(seed).Fill(g, density)
	return g
}
