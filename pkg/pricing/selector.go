package pricing

import "fmt"

// SelectBest picks the best-compromise scenario from a prior optimization
// result under the given integer weighting. Missing objectives weigh 0.
// Each objective is min-max normalized across the scenario set; a zero
// range contributes neutrally. Revenue and user balance add to the score,
// occupancy gap and demand drop subtract. Ties break toward the lowest
// scenario id.
func SelectBest(result *Result, weights map[string]int) (*Scenario, error) {
	if result == nil || len(result.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}

	normalized := map[string][]float64{
		ObjectiveRevenue:      normalize(result.Scenarios, func(s Scores) float64 { return s.Revenue }),
		ObjectiveOccupancyGap: normalize(result.Scenarios, func(s Scores) float64 { return s.OccupancyGap }),
		ObjectiveDemandDrop:   normalize(result.Scenarios, func(s Scores) float64 { return s.DemandDrop }),
		ObjectiveUserBalance:  normalize(result.Scenarios, func(s Scores) float64 { return s.UserBalance }),
	}

	best := -1
	bestScore := 0.0
	for i := range result.Scenarios {
		score := float64(weights[ObjectiveRevenue])*normalized[ObjectiveRevenue][i] +
			float64(weights[ObjectiveUserBalance])*normalized[ObjectiveUserBalance][i] -
			float64(weights[ObjectiveOccupancyGap])*normalized[ObjectiveOccupancyGap][i] -
			float64(weights[ObjectiveDemandDrop])*normalized[ObjectiveDemandDrop][i]

		if best == -1 || score > bestScore ||
			(score == bestScore && result.Scenarios[i].ID < result.Scenarios[best].ID) {
			best = i
			bestScore = score
		}
	}

	if best == -1 {
		return nil, fmt.Errorf("no eligible scenario: %w", ErrNoScenarios)
	}
	return &result.Scenarios[best], nil
}

// normalize min-max scales one objective across the scenario set to [0, 1].
// A zero range degenerates to all-zero contributions.
func normalize(scenarios []Scenario, value func(Scores) float64) []float64 {
	lo := value(scenarios[0].Scores)
	hi := lo
	for _, s := range scenarios[1:] {
		v := value(s.Scores)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]float64, len(scenarios))
	if hi == lo {
		return out
	}
	for i, s := range scenarios {
		out[i] = (value(s.Scores) - lo) / (hi - lo)
	}
	return out
}
