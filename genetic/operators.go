package genetic

import "slices"

// roulette picks a genome with probability proportional to its fitness.
// A population with zero total fitness falls back to a uniform pick.
func (ga *GA) roulette() *Genome {
	pop := ga.population
	if ga.stats.Total <= 0 {
		return pop[ga.rng.Intn(len(pop))]
	}

	slice := ga.rng.Float64() * ga.stats.Total
	var soFar float64
	for _, g := range pop {
		soFar += g.Fitness
		if soFar >= slice {
			return g
		}
	}
	// rounding can leave soFar a hair below slice
	return pop[len(pop)-1]
}

// Crossover recombines two parents into two offspring weight vectors.
// With probability 1-CrossoverRate, or when both parents are the same genome,
// the offspring are plain copies of mum and dad.
func (ga *GA) Crossover(mum, dad *Genome) (baby1, baby2 []float64) {
	if ga.rng.Float64() > ga.params.CrossoverRate || mum == dad {
		return slices.Clone(mum.Weights), slices.Clone(dad.Weights)
	}
	cp := ga.rng.Intn(len(mum.Weights))
	return SinglePointCrossover(mum.Weights, dad.Weights, cp)
}

// SinglePointCrossover swaps the tails of two equal-length vectors at cp:
// baby1 = mum[:cp] + dad[cp:], baby2 = dad[:cp] + mum[cp:].
func SinglePointCrossover(mum, dad []float64, cp int) (baby1, baby2 []float64) {
	baby1 = make([]float64, 0, len(mum))
	baby1 = append(baby1, mum[:cp]...)
	baby1 = append(baby1, dad[cp:]...)

	baby2 = make([]float64, 0, len(dad))
	baby2 = append(baby2, dad[:cp]...)
	baby2 = append(baby2, mum[cp:]...)
	return baby1, baby2
}

// Mutate perturbs each gene with probability MutationRate by
// (U(0,1)-U(0,1)) * MaxPerturbation, in place.
func (ga *GA) Mutate(chromo []float64) {
	for i := range chromo {
		if ga.rng.Float64() < ga.params.MutationRate {
			chromo[i] += (ga.rng.Float64() - ga.rng.Float64()) * ga.params.MaxPerturbation
		}
	}
}
