// Package genetic implements the generational genetic algorithm that evolves
// sweeper weight vectors.
package genetic

import (
	"math/rand"
	"slices"
)

// Genome is a weight vector and the fitness it earned during one generation.
type Genome struct {
	Weights []float64
	Fitness float64
}

// NewRandomGenome returns a genome of length n with weights drawn from U(0,1)-U(0,1).
func NewRandomGenome(n int, rng *rand.Rand) *Genome {
	w := make([]float64, n)
	for i := range w {
		w[i] = rng.Float64() - rng.Float64()
	}
	return &Genome{Weights: w}
}

// Clone returns a deep copy; the clone never shares its weight slice.
func (g *Genome) Clone() *Genome {
	return &Genome{
		Weights: slices.Clone(g.Weights),
		Fitness: g.Fitness,
	}
}
