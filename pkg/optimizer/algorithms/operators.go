package algorithms

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/cityops/parkfee/pkg/optimizer/framework"
)

// Real-coded variation operators. Both operators draw exclusively from the
// rng passed in so a seeded run replays exactly.

// SBXCrossover performs simulated binary crossover on two parents and
// returns two children clamped to their bounds. eta is the distribution
// index: larger values keep children closer to the parents.
func SBXCrossover(rng *rand.Rand, p1, p2 *framework.RealSolution, rate, eta float64) (*framework.RealSolution, *framework.RealSolution) {
	c1 := p1.Clone().(*framework.RealSolution)
	c2 := p2.Clone().(*framework.RealSolution)

	if rng.Float64() >= rate {
		return c1, c2
	}

	for i := range c1.Variables {
		if rng.Float64() > 0.5 {
			continue
		}
		x1 := c1.Variables[i]
		x2 := c2.Variables[i]
		if math.Abs(x1-x2) < 1e-14 {
			continue
		}

		u := rng.Float64()
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, 1/(eta+1))
		} else {
			beta = math.Pow(1/(2*(1-u)), 1/(eta+1))
		}

		c1.Variables[i] = 0.5 * ((1+beta)*x1 + (1-beta)*x2)
		c2.Variables[i] = 0.5 * ((1-beta)*x1 + (1+beta)*x2)
	}

	c1.Repair()
	c2.Repair()
	return c1, c2
}

// PolynomialMutation perturbs each variable with the given per-gene
// probability and clamps the result to bounds. eta is the distribution
// index: larger values produce smaller perturbations.
func PolynomialMutation(rng *rand.Rand, s *framework.RealSolution, rate, eta float64) {
	for i := range s.Variables {
		if rng.Float64() >= rate {
			continue
		}
		lo := s.Bounds[i].L
		hi := s.Bounds[i].H
		if hi-lo < 1e-14 {
			continue
		}

		u := rng.Float64()
		var delta float64
		if u < 0.5 {
			delta = math.Pow(2*u, 1/(eta+1)) - 1
		} else {
			delta = 1 - math.Pow(2*(1-u), 1/(eta+1))
		}

		s.Variables[i] += delta * (hi - lo)
	}
	s.Repair()
}

// TournamentSelect picks the better of two random population members by
// non-domination rank, breaking ties with the smaller distance to the
// associated reference direction.
func TournamentSelect(rng *rand.Rand, population []*NSGAIIISolution) *NSGAIIISolution {
	a := population[rng.Intn(len(population))]
	b := population[rng.Intn(len(population))]
	if b.Rank < a.Rank || (b.Rank == a.Rank && b.RefDist < a.RefDist) {
		return b
	}
	return a
}
