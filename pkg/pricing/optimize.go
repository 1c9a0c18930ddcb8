package pricing

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/cityops/parkfee/pkg/optimizer/algorithms"
	"github.com/cityops/parkfee/pkg/optimizer/framework"
)

// Optimize runs the full generation loop over the zone set and returns the
// realized approximation of the Pareto front as scenarios. The run is
// deterministic for a given seed; a zero seed selects the engine's default.
// Cancellation is honored at generation boundaries only.
func Optimize(ctx context.Context, zones []Zone, settings Settings) (*Result, error) {
	if err := ValidateZones(zones); err != nil {
		return nil, fmt.Errorf("invalid zones: %w", err)
	}
	SetDefaults_Settings(&settings)
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	problem, err := NewFeeProblem(zones, settings.TargetOccupancy)
	if err != nil {
		return nil, fmt.Errorf("invalid zone configuration: %w", err)
	}

	logger := klog.Background().WithValues("component", "pricing")
	logger.V(2).Info("Running fee optimization",
		"zones", len(zones),
		"groups", problem.Encoding().NumGroups(),
		"populationSize", settings.PopulationSize,
		"generations", settings.Generations,
		"targetOccupancy", settings.TargetOccupancy)

	nsga := algorithms.NewNSGAIII(algorithms.NSGA3Config{
		PopulationSize:       settings.PopulationSize,
		MaxGenerations:       settings.Generations,
		CrossoverProbability: settings.CrossoverProbability,
		MutationProbability:  settings.MutationProbability,
		ReferencePartitions:  settings.ReferencePartitions,
		Seed:                 settings.Seed,
		ParallelExecution:    true,
	}, problem)

	population, err := nsga.Run(ctx)
	if err != nil {
		return nil, err
	}

	front := algorithms.GetParetoFront(population)
	logger.V(2).Info("Optimization finished", "paretoOptimal", len(front))

	return &Result{
		Scenarios:      buildScenarios(front, zones, problem.Encoding()),
		Seed:           nsga.Seed,
		PopulationSize: settings.PopulationSize,
		Generations:    settings.Generations,
	}, nil
}

// buildScenarios converts the surviving front into business-readable
// scenarios: per-zone projected fee/occupancy/revenue plus the four raw
// scores in their natural sense. IDs follow the stable front enumeration
// order of this run.
func buildScenarios(front []*algorithms.NSGAIIISolution, zones []Zone, enc *Encoding) []Scenario {
	scenarios := make([]Scenario, 0, len(front))
	for id, sol := range front {
		genes := sol.Solution.(*framework.RealSolution).Variables
		fees := enc.Broadcast(genes)

		projections := make([]ZoneProjection, len(zones))
		var scores Scores
		for i, z := range zones {
			pred := PredictResponse(z, fees[i])
			projections[i] = ZoneProjection{
				ZoneID:    z.ID,
				Fee:       fees[i],
				Occupancy: pred.Occupancy,
				Revenue:   pred.Revenue,
			}
			scores.Revenue += pred.Revenue
		}

		// The engine minimized [-revenue, gap, drop, variance]; report the
		// raw maximize/minimize values instead.
		scores.OccupancyGap = sol.Value[1]
		scores.DemandDrop = sol.Value[2]
		scores.UserBalance = -sol.Value[3]

		scenarios = append(scenarios, Scenario{
			ID:     id,
			Zones:  projections,
			Scores: scores,
		})
	}
	return scenarios
}
