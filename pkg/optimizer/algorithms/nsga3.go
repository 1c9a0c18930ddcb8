package algorithms

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/cityops/parkfee/pkg/optimizer/framework"
)

const (
	Name = "NSGA-III"

	// DefaultSeed is used when a caller does not provide one, so that
	// unseeded runs are still reproducible.
	DefaultSeed uint64 = 42
)

// NSGAIIISolution wraps a solution in the population with its objective
// value and the bookkeeping of environmental selection: non-domination rank
// and the associated reference direction.
type NSGAIIISolution struct {
	Solution framework.Solution
	Value    framework.ObjectiveSpacePoint

	Rank    int
	RefDir  int
	RefDist float64
}

func NewNSGAIIISolution(sol framework.Solution, val framework.ObjectiveSpacePoint) *NSGAIIISolution {
	return &NSGAIIISolution{Solution: sol, Value: val}
}

// Dominates checks if solution a dominates solution b (minimization sense).
func Dominates(a, b *NSGAIIISolution) bool {
	better := false
	for i := 0; i < len(a.Value); i++ {
		if a.Value[i] > b.Value[i] {
			return false
		}
		if a.Value[i] < b.Value[i] {
			better = true
		}
	}
	return better
}

// NonDominatedSort partitions the population into fronts by iterative
// dominance-count peeling and stamps each solution's Rank.
func NonDominatedSort(population []*NSGAIIISolution) [][]*NSGAIIISolution {
	var fronts [][]*NSGAIIISolution
	dominated := make(map[int][]int)
	domCount := make([]int, len(population))

	for i := 0; i < len(population); i++ {
		dominated[i] = []int{}
		for j := 0; j < len(population); j++ {
			if i != j {
				if Dominates(population[i], population[j]) {
					dominated[i] = append(dominated[i], j)
				} else if Dominates(population[j], population[i]) {
					domCount[i]++
				}
			}
		}
	}

	currentFront := []*NSGAIIISolution{}
	currentFrontIndices := []int{}
	for i := 0; i < len(population); i++ {
		if domCount[i] == 0 {
			population[i].Rank = 0
			currentFront = append(currentFront, population[i])
			currentFrontIndices = append(currentFrontIndices, i)
		}
	}
	fronts = append(fronts, currentFront)

	frontIndex := 0
	for len(currentFront) > 0 {
		nextFront := []*NSGAIIISolution{}
		nextFrontIndices := []int{}
		for _, idx := range currentFrontIndices {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					population[dominatedIdx].Rank = frontIndex + 1
					nextFront = append(nextFront, population[dominatedIdx])
					nextFrontIndices = append(nextFrontIndices, dominatedIdx)
				}
			}
		}
		frontIndex++
		if len(nextFront) > 0 {
			fronts = append(fronts, nextFront)
		}
		currentFront = nextFront
		currentFrontIndices = nextFrontIndices
	}

	return fronts
}

// NSGA3Config holds configuration parameters for NSGA-III.
type NSGA3Config struct {
	PopulationSize       int
	MaxGenerations       int
	CrossoverProbability float64
	MutationProbability  float64 // 0 means 1/numVariables
	CrossoverEta         float64
	MutationEta          float64
	ReferencePartitions  int
	Seed                 uint64
	ParallelExecution    bool // parallel per-candidate evaluation
}

// NSGAIII runs the reference-point based NSGA-III algorithm over a Problem.
type NSGAIII struct {
	PopSize           int
	NumGenerations    int
	Problem           framework.Problem
	CrossoverRate     float64
	MutationRate      float64
	CrossoverEta      float64
	MutationEta       float64
	Seed              uint64
	ParallelExecution bool

	logger  klog.Logger
	refDirs []framework.ObjectiveSpacePoint
	ideal   []float64 // componentwise minimum seen so far
}

// NewNSGAIII creates a new instance of NSGA-III with given parameters.
func NewNSGAIII(config NSGA3Config, problem framework.Problem) *NSGAIII {
	numObjectives := len(problem.ObjectiveFuncs())
	numVars := len(problem.Bounds())

	mutationRate := config.MutationProbability
	if mutationRate == 0 && numVars > 0 {
		mutationRate = 1.0 / float64(numVars)
	}
	crossoverEta := config.CrossoverEta
	if crossoverEta == 0 {
		crossoverEta = 15
	}
	mutationEta := config.MutationEta
	if mutationEta == 0 {
		mutationEta = 20
	}
	partitions := config.ReferencePartitions
	if partitions == 0 {
		partitions = 6
	}
	seed := config.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	ideal := make([]float64, numObjectives)
	for i := range ideal {
		ideal[i] = math.Inf(1)
	}

	return &NSGAIII{
		PopSize:           config.PopulationSize,
		NumGenerations:    config.MaxGenerations,
		Problem:           problem,
		CrossoverRate:     config.CrossoverProbability,
		MutationRate:      mutationRate,
		CrossoverEta:      crossoverEta,
		MutationEta:       mutationEta,
		Seed:              seed,
		ParallelExecution: config.ParallelExecution,
		logger:            klog.Background().WithValues("algorithm", Name),
		refDirs:           ReferenceDirections(numObjectives, partitions),
		ideal:             ideal,
	}
}

// ReferenceDirectionCount reports how many reference directions the run
// spreads selection across.
func (n *NSGAIII) ReferenceDirectionCount() int {
	return len(n.refDirs)
}

// Evaluate computes the objective vector for an individual. Solutions
// violating a constraint get the worst possible value on every objective so
// the population evolves away from them.
func (n *NSGAIII) Evaluate(individual framework.Solution) framework.ObjectiveSpacePoint {
	for _, c := range n.Problem.Constraints() {
		if !c(individual) {
			res := make(framework.ObjectiveSpacePoint, len(n.Problem.ObjectiveFuncs()))
			for i := range res {
				res[i] = math.Inf(1)
			}
			return res
		}
	}

	objectives := n.Problem.ObjectiveFuncs()
	res := make(framework.ObjectiveSpacePoint, len(objectives))
	for i, objFunc := range objectives {
		res[i] = objFunc(individual)
	}
	return res
}

// Run executes the NSGA-III generation loop. Cancellation is honored only
// at generation boundaries so that selection always sees a fully-evaluated
// population.
func (n *NSGAIII) Run(ctx context.Context) ([]*NSGAIIISolution, error) {
	if n.PopSize < 2 {
		return nil, fmt.Errorf("population size must be at least 2, got %d", n.PopSize)
	}

	rng := rand.New(rand.NewSource(n.Seed))

	n.logger.V(2).Info("Starting evolution",
		"populationSize", n.PopSize,
		"generations", n.NumGenerations,
		"crossoverRate", n.CrossoverRate,
		"mutationRate", n.MutationRate,
		"referenceDirections", len(n.refDirs),
		"seed", n.Seed,
		"parallel", n.ParallelExecution)

	initPop := n.Problem.Initialize(rng, n.PopSize)
	if len(initPop) != n.PopSize {
		return nil, fmt.Errorf("problem initialized %d solutions, want %d", len(initPop), n.PopSize)
	}
	population := n.evaluateAll(initPop)

	// Rank and associate the initial population so the first tournament
	// round has something to compare.
	NonDominatedSort(population)
	associate(population, n.normalize(population), n.refDirs)

	for gen := 0; gen < n.NumGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		offspring := n.evaluateAll(n.makeOffspring(rng, population))
		population = n.environmentalSelection(append(population, offspring...))

		if gen%10 == 0 {
			n.logger.V(3).Info("Generation complete", "generation", gen+1, "of", n.NumGenerations)
		}
	}

	return population, nil
}

// makeOffspring produces PopSize children by tournament selection, SBX
// crossover and polynomial mutation. Variation is sequential on the single
// rng so runs replay bit-identically for a seed.
func (n *NSGAIII) makeOffspring(rng *rand.Rand, population []*NSGAIIISolution) []framework.Solution {
	offspring := make([]framework.Solution, 0, n.PopSize)
	for len(offspring) < n.PopSize {
		p1 := TournamentSelect(rng, population).Solution.(*framework.RealSolution)
		p2 := TournamentSelect(rng, population).Solution.(*framework.RealSolution)

		c1, c2 := SBXCrossover(rng, p1, p2, n.CrossoverRate, n.CrossoverEta)
		PolynomialMutation(rng, c1, n.MutationRate, n.MutationEta)
		PolynomialMutation(rng, c2, n.MutationRate, n.MutationEta)

		offspring = append(offspring, c1)
		if len(offspring) < n.PopSize {
			offspring = append(offspring, c2)
		}
	}
	return offspring
}

// evaluateAll computes objective vectors for a batch of solutions.
// Evaluation is pure, every worker writes only its own slot, so the
// parallel path yields the same result as the sequential one.
func (n *NSGAIII) evaluateAll(solutions []framework.Solution) []*NSGAIIISolution {
	evaluated := make([]*NSGAIIISolution, len(solutions))

	if !n.ParallelExecution {
		for i, sol := range solutions {
			evaluated[i] = NewNSGAIIISolution(sol, n.Evaluate(sol))
		}
		return evaluated
	}

	numWorkers := runtime.NumCPU()
	workChan := make(chan int, len(solutions))
	wg := &sync.WaitGroup{}
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workChan {
				evaluated[i] = NewNSGAIIISolution(solutions[i], n.Evaluate(solutions[i]))
			}
		}()
	}
	for i := range solutions {
		workChan <- i
	}
	close(workChan)
	wg.Wait()

	return evaluated
}

// environmentalSelection reduces the merged parent+offspring population back
// to PopSize: fill front by front, then split the overflowing front with
// reference-point niching.
func (n *NSGAIII) environmentalSelection(combined []*NSGAIIISolution) []*NSGAIIISolution {
	fronts := NonDominatedSort(combined)

	next := make([]*NSGAIIISolution, 0, n.PopSize)
	frontIndex := 0
	for frontIndex < len(fronts) && len(next)+len(fronts[frontIndex]) <= n.PopSize {
		next = append(next, fronts[frontIndex]...)
		frontIndex++
	}

	if len(next) == n.PopSize || frontIndex >= len(fronts) {
		associate(next, n.normalize(next), n.refDirs)
		return next
	}

	split := fronts[frontIndex]

	// Normalize and associate over everything under consideration so the
	// split front is measured against the same intercepts as the survivors.
	considered := make([]*NSGAIIISolution, 0, len(next)+len(split))
	considered = append(considered, next...)
	considered = append(considered, split...)
	associate(considered, n.normalize(considered), n.refDirs)

	return n.niche(next, split, n.PopSize-len(next))
}

// niche fills the remaining slots from the split front, preferring
// reference directions with the fewest survivors. Ties between candidates
// on one direction break by perpendicular distance, then front rank, then
// insertion order.
func (n *NSGAIII) niche(next, split []*NSGAIIISolution, slots int) []*NSGAIIISolution {
	counts := make([]int, len(n.refDirs))
	for _, s := range next {
		counts[s.RefDir]++
	}

	candidates := make([][]*NSGAIIISolution, len(n.refDirs))
	for _, s := range split {
		candidates[s.RefDir] = append(candidates[s.RefDir], s)
	}

	for slots > 0 {
		dir := -1
		for d := range candidates {
			if len(candidates[d]) == 0 {
				continue
			}
			if dir == -1 || counts[d] < counts[dir] {
				dir = d
			}
		}
		if dir == -1 {
			break
		}

		best := 0
		for k := 1; k < len(candidates[dir]); k++ {
			c := candidates[dir][k]
			b := candidates[dir][best]
			if c.RefDist < b.RefDist || (c.RefDist == b.RefDist && c.Rank < b.Rank) {
				best = k
			}
		}

		next = append(next, candidates[dir][best])
		candidates[dir] = append(candidates[dir][:best], candidates[dir][best+1:]...)
		counts[dir]++
		slots--
	}

	return next
}

// normalize translates objective values by the running ideal point and
// scales them by intercepts derived from the extreme points, following the
// NSGA-III normalization scheme. Penalized (infinite) values pass through
// untouched.
func (n *NSGAIII) normalize(pop []*NSGAIIISolution) []framework.ObjectiveSpacePoint {
	m := len(n.ideal)

	for _, s := range pop {
		for j, v := range s.Value {
			if !math.IsInf(v, 1) && v < n.ideal[j] {
				n.ideal[j] = v
			}
		}
	}
	ideal := make([]float64, m)
	for j := range ideal {
		if !math.IsInf(n.ideal[j], 1) {
			ideal[j] = n.ideal[j]
		}
	}

	intercepts := n.intercepts(pop, ideal)

	normalized := make([]framework.ObjectiveSpacePoint, len(pop))
	for i, s := range pop {
		point := make(framework.ObjectiveSpacePoint, m)
		for j, v := range s.Value {
			if math.IsInf(v, 1) {
				point[j] = v
				continue
			}
			point[j] = (v - ideal[j]) / intercepts[j]
		}
		normalized[i] = point
	}
	return normalized
}

// intercepts computes per-objective scales from the hyperplane through the
// extreme points of the population, falling back to the observed worst
// value per objective when the system is degenerate.
func (n *NSGAIII) intercepts(pop []*NSGAIIISolution, ideal []float64) []float64 {
	m := len(ideal)
	const eps = 1e-10

	// Worst finite translated value per objective, the fallback scale.
	nadir := make([]float64, m)
	for _, s := range pop {
		for j, v := range s.Value {
			if math.IsInf(v, 1) {
				continue
			}
			if t := v - ideal[j]; t > nadir[j] {
				nadir[j] = t
			}
		}
	}
	for j := range nadir {
		if nadir[j] < eps {
			nadir[j] = 1
		}
	}

	// Extreme point per axis: minimizer of the achievement scalarizing
	// function with the axis weight vector.
	extremes := make([][]float64, m)
	for j := 0; j < m; j++ {
		bestASF := math.Inf(1)
		for _, s := range pop {
			finite := true
			asf := 0.0
			for k, v := range s.Value {
				if math.IsInf(v, 1) {
					finite = false
					break
				}
				w := 1e-6
				if k == j {
					w = 1.0
				}
				if a := (v - ideal[k]) / w; a > asf {
					asf = a
				}
			}
			if !finite || asf >= bestASF {
				continue
			}
			bestASF = asf
			translated := make([]float64, m)
			for k, v := range s.Value {
				translated[k] = v - ideal[k]
			}
			extremes[j] = translated
		}
		if extremes[j] == nil {
			return nadir
		}
	}

	// Hyperplane through the extremes: solve E*x = 1, intercept_j = 1/x_j.
	x, ok := solveLinearSystem(extremes, onesVector(m))
	if !ok {
		return nadir
	}
	intercepts := make([]float64, m)
	for j := range intercepts {
		if x[j] < eps || math.IsInf(x[j], 0) || math.IsNaN(x[j]) {
			return nadir
		}
		intercepts[j] = 1 / x[j]
		if intercepts[j] < eps {
			return nadir
		}
	}
	return intercepts
}

func onesVector(m int) []float64 {
	b := make([]float64, m)
	for i := range b {
		b[i] = 1
	}
	return b
}

// solveLinearSystem solves a*x = b by Gaussian elimination with partial
// pivoting. Returns ok=false for a (near-)singular system.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, bool) {
	m := len(b)
	aug := make([][]float64, m)
	for i := range aug {
		aug[i] = make([]float64, m+1)
		copy(aug[i], a[i])
		aug[i][m] = b[i]
	}

	for col := 0; col < m; col++ {
		pivot := col
		for row := col + 1; row < m; row++ {
			if math.Abs(aug[row][col]) > math.Abs(aug[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(aug[pivot][col]) < 1e-12 {
			return nil, false
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		for row := col + 1; row < m; row++ {
			factor := aug[row][col] / aug[col][col]
			for k := col; k <= m; k++ {
				aug[row][k] -= factor * aug[col][k]
			}
		}
	}

	x := make([]float64, m)
	for row := m - 1; row >= 0; row-- {
		sum := aug[row][m]
		for col := row + 1; col < m; col++ {
			sum -= aug[row][col] * x[col]
		}
		x[row] = sum / aug[row][row]
	}
	return x, true
}
