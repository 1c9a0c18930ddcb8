// Package framework defines the problem-agnostic types shared by the
// optimizer: decision vectors, objective-space points, and the Problem
// interface an optimization target implements.
package framework

import (
	"golang.org/x/exp/rand"
)

// ObjectiveSpacePoint is a point in objective space. All objectives are in
// minimization sense; callers maximizing an objective negate it before
// handing it to the optimizer.
type ObjectiveSpacePoint []float64

// ObjectiveFunc evaluates one objective for a solution.
type ObjectiveFunc func(s Solution) float64

// Constraint reports whether a solution is feasible.
type Constraint func(s Solution) bool

// Bounds is the inclusive [L, H] range of one decision variable.
type Bounds struct {
	L float64
	H float64
}

// Solution is a candidate in decision space.
type Solution interface {
	Clone() Solution
}

// RealSolution is a real-coded decision vector with per-variable bounds.
type RealSolution struct {
	Variables []float64
	Bounds    []Bounds
}

func NewRealSolution(vars []float64, bounds []Bounds) *RealSolution {
	return &RealSolution{Variables: vars, Bounds: bounds}
}

func (s *RealSolution) Clone() Solution {
	vars := make([]float64, len(s.Variables))
	copy(vars, s.Variables)
	return &RealSolution{Variables: vars, Bounds: s.Bounds}
}

// Repair clamps every variable back into its bounds.
func (s *RealSolution) Repair() {
	for i, v := range s.Variables {
		if v < s.Bounds[i].L {
			s.Variables[i] = s.Bounds[i].L
		} else if v > s.Bounds[i].H {
			s.Variables[i] = s.Bounds[i].H
		}
	}
}

// Problem describes an optimization target.
type Problem interface {
	Name() string
	ObjectiveFuncs() []ObjectiveFunc
	Constraints() []Constraint
	Bounds() []Bounds
	// Initialize samples popSize solutions from the given source of
	// randomness. Implementations must not touch any other RNG so that a
	// seeded run is reproducible.
	Initialize(rng *rand.Rand, popSize int) []Solution
}
