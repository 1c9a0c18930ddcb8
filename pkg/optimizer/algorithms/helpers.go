package algorithms

// GetParetoFront extracts the Pareto front (first non-dominated front) from
// a population.
func GetParetoFront(population []*NSGAIIISolution) []*NSGAIIISolution {
	if len(population) == 0 {
		return nil
	}
	fronts := NonDominatedSort(population)
	if len(fronts) == 0 {
		return nil
	}
	return fronts[0]
}
