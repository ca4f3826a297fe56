package genetic

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// ErrParams is returned for parameter sets the algorithm cannot run with.
var ErrParams = errors.New("genetic: invalid parameters")

// Params configures the algorithm.
type Params struct {
	PopulationSize   int
	ChromosomeLength int
	MutationRate     float64 // per-gene probability of perturbation
	CrossoverRate    float64 // probability a pairing recombines
	MaxPerturbation  float64 // scale of a single mutation
	NumElite         int     // top genomes carried over unchanged
	NumCopiesElite   int     // copies of each elite
}

// Validate reports parameters the algorithm cannot run with.
func (p Params) Validate() error {
	switch {
	case p.PopulationSize <= 0:
		return fmt.Errorf("%w: population size must be positive, got %d", ErrParams, p.PopulationSize)
	case p.ChromosomeLength <= 0:
		return fmt.Errorf("%w: chromosome length must be positive, got %d", ErrParams, p.ChromosomeLength)
	case p.MutationRate < 0 || p.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v outside [0, 1]", ErrParams, p.MutationRate)
	case p.CrossoverRate < 0 || p.CrossoverRate > 1:
		return fmt.Errorf("%w: crossover rate %v outside [0, 1]", ErrParams, p.CrossoverRate)
	case p.MaxPerturbation < 0:
		return fmt.Errorf("%w: max perturbation must not be negative, got %v", ErrParams, p.MaxPerturbation)
	case p.NumElite < 0 || p.NumCopiesElite < 0:
		return fmt.Errorf("%w: elite counts must not be negative", ErrParams)
	}
	return nil
}

// ElitismEnabled reports whether elites are carried over. Elitism only runs when
// NumElite*NumCopiesElite is even; an odd product skips it every epoch.
func (p Params) ElitismEnabled() bool {
	return p.NumElite > 0 && p.NumCopiesElite > 0 && (p.NumElite*p.NumCopiesElite)%2 == 0
}

// EliteSlots returns how many leading slots of a new population hold elite copies.
func (p Params) EliteSlots() int {
	if !p.ElitismEnabled() {
		return 0
	}
	return min(min(p.NumElite, p.PopulationSize)*p.NumCopiesElite, p.PopulationSize)
}

// Stats summarises the fitness of the last evaluated population.
type Stats struct {
	Generation int
	Best       float64
	Worst      float64
	Average    float64
	Total      float64
}

// GA owns a population of genomes and breeds successive generations.
// It is not safe for concurrent use.
type GA struct {
	params     Params
	rng        *rand.Rand
	population []*Genome
	stats      Stats
}

// New creates the algorithm with a random initial population.
func New(params Params, rng *rand.Rand) (*GA, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	ga := &GA{params: params, rng: rng}
	ga.population = make([]*Genome, params.PopulationSize)
	for i := range ga.population {
		ga.population[i] = NewRandomGenome(params.ChromosomeLength, rng)
	}
	return ga, nil
}

// Params returns the algorithm's configuration.
func (ga *GA) Params() Params { return ga.params }

// Population returns the current population. Index i is bound to sweeper i.
func (ga *GA) Population() []*Genome { return ga.population }

// Stats returns the statistics computed by the last RunEpoch.
func (ga *GA) Stats() Stats { return ga.stats }

// Generation returns the number of epochs run so far.
func (ga *GA) Generation() int { return ga.stats.Generation }

// RunEpoch breeds the next generation from an evaluated population whose
// fitness has already been assigned. The returned population always has
// exactly PopulationSize genomes: when pairs of offspring overshoot, the last
// child is dropped.
func (ga *GA) RunEpoch(evaluated []*Genome) []*Genome {
	sorted := slices.Clone(evaluated)
	slices.SortStableFunc(sorted, func(a, b *Genome) int {
		switch {
		case a.Fitness < b.Fitness:
			return -1
		case a.Fitness > b.Fitness:
			return 1
		}
		return 0
	})
	ga.population = sorted
	ga.calculateStats()

	size := ga.params.PopulationSize
	next := make([]*Genome, 0, size+1)
	if ga.params.ElitismEnabled() {
		next = ga.appendElites(next)
	}

	for len(next) < size {
		mum := ga.roulette()
		dad := ga.roulette()

		baby1, baby2 := ga.Crossover(mum, dad)
		ga.Mutate(baby1)
		ga.Mutate(baby2)

		next = append(next, &Genome{Weights: baby1}, &Genome{Weights: baby2})
	}
	next = next[:size]

	ga.population = next
	ga.stats.Generation++
	return next
}

// calculateStats recomputes total, average, best and worst over the sorted population.
func (ga *GA) calculateStats() {
	fitness := make([]float64, len(ga.population))
	for i, g := range ga.population {
		fitness[i] = g.Fitness
	}
	if len(fitness) == 0 {
		ga.stats.Total, ga.stats.Average, ga.stats.Best, ga.stats.Worst = 0, 0, 0, 0
		return
	}
	ga.stats.Total = floats.Sum(fitness)
	ga.stats.Average = ga.stats.Total / float64(ga.params.PopulationSize)
	ga.stats.Best = floats.Max(fitness)
	ga.stats.Worst = floats.Min(fitness)
}

// appendElites adds NumCopiesElite deep copies of each of the NumElite best
// genomes, least elite first.
func (ga *GA) appendElites(dst []*Genome) []*Genome {
	n := len(ga.population)
	for k := min(ga.params.NumElite, n); k >= 1; k-- {
		elite := ga.population[n-k]
		for c := 0; c < ga.params.NumCopiesElite; c++ {
			dst = append(dst, elite.Clone())
		}
	}
	return dst
}
