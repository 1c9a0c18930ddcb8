package pricing

import "fmt"

// ValidateZones checks the zone invariants the optimizer relies on. A
// violation is a configuration error: optimization never starts.
func ValidateZones(zones []Zone) error {
	if len(zones) == 0 {
		return fmt.Errorf("zone list must not be empty")
	}
	seen := make(map[string]bool, len(zones))
	for _, z := range zones {
		if z.ID == "" {
			return fmt.Errorf("zone without id")
		}
		if seen[z.ID] {
			return fmt.Errorf("duplicate zone id %q", z.ID)
		}
		seen[z.ID] = true
		if z.Capacity <= 0 {
			return fmt.Errorf("zone %s: capacity must be positive, got %d", z.ID, z.Capacity)
		}
		if z.CurrentFee < 0 {
			return fmt.Errorf("zone %s: current fee must not be negative, got %v", z.ID, z.CurrentFee)
		}
		if z.MinFee < 0 || z.MinFee > z.MaxFee {
			return fmt.Errorf("zone %s: fee bounds [%v, %v] invalid", z.ID, z.MinFee, z.MaxFee)
		}
		if z.CurrentOccupancy < 0 || z.CurrentOccupancy > 1 {
			return fmt.Errorf("zone %s: current occupancy must be in [0, 1], got %v", z.ID, z.CurrentOccupancy)
		}
		if z.ShortTermShare < 0 || z.ShortTermShare > 1 {
			return fmt.Errorf("zone %s: short-term share must be in [0, 1], got %v", z.ID, z.ShortTermShare)
		}
		if z.Elasticity > 0 {
			return fmt.Errorf("zone %s: elasticity must not be positive, got %v", z.ID, z.Elasticity)
		}
	}
	return nil
}

// ValidateSettings checks the run settings.
func ValidateSettings(s Settings) error {
	if s.PopulationSize < 10 {
		return fmt.Errorf("population size must be at least 10, got %d", s.PopulationSize)
	}
	if s.Generations < 1 {
		return fmt.Errorf("generations must be at least 1, got %d", s.Generations)
	}
	if s.TargetOccupancy < 0 || s.TargetOccupancy > 1 {
		return fmt.Errorf("target occupancy must be in [0, 1], got %v", s.TargetOccupancy)
	}
	if s.CrossoverProbability < 0 || s.CrossoverProbability > 1 {
		return fmt.Errorf("crossover probability must be in [0, 1], got %v", s.CrossoverProbability)
	}
	if s.MutationProbability < 0 || s.MutationProbability > 1 {
		return fmt.Errorf("mutation probability must be in [0, 1], got %v", s.MutationProbability)
	}
	return nil
}

// ValidateWeights rejects weightings that reference unknown objectives.
// Partial weightings are fine; missing objectives default to weight 0.
func ValidateWeights(weights map[string]int) error {
	for name := range weights {
		switch name {
		case ObjectiveRevenue, ObjectiveOccupancyGap, ObjectiveDemandDrop, ObjectiveUserBalance:
		default:
			return fmt.Errorf("unknown objective %q in weighting", name)
		}
	}
	return nil
}
