package pricing

import (
	"golang.org/x/exp/rand"

	"github.com/cityops/parkfee/pkg/optimizer/framework"
	"github.com/cityops/parkfee/pkg/pricing/objectives"
)

// FeeProblem adapts the zone set to the optimizer's Problem interface. The
// decision vector is one fee per cluster group; the objective space is
// [-revenue, occupancy_gap, demand_drop, occupancy_variance], all minimized.
type FeeProblem struct {
	zones  []Zone
	enc    *Encoding
	target float64
}

// NewFeeProblem derives the encoding from the zones and binds the target
// occupancy. Conflicting cluster-group bounds surface here, before any
// optimization starts.
func NewFeeProblem(zones []Zone, target float64) (*FeeProblem, error) {
	enc, err := NewEncoding(zones)
	if err != nil {
		return nil, err
	}
	return &FeeProblem{zones: zones, enc: enc, target: target}, nil
}

func (p *FeeProblem) Name() string {
	return "ParkingFees"
}

// Encoding exposes the gene layout for scenario construction.
func (p *FeeProblem) Encoding() *Encoding {
	return p.enc
}

// Outcomes evaluates the response model for every zone under the candidate's
// broadcast fees.
func (p *FeeProblem) Outcomes(sol framework.Solution) []objectives.ZoneOutcome {
	genes := sol.(*framework.RealSolution).Variables
	fees := p.enc.Broadcast(genes)

	outcomes := make([]objectives.ZoneOutcome, len(p.zones))
	for i, z := range p.zones {
		pred := PredictResponse(z, fees[i])
		outcomes[i] = objectives.ZoneOutcome{
			Occupancy:        pred.Occupancy,
			Revenue:          pred.Revenue,
			CurrentOccupancy: z.CurrentOccupancy,
		}
	}
	return outcomes
}

func (p *FeeProblem) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		func(s framework.Solution) float64 {
			return objectives.Revenue(p.Outcomes(s))
		},
		func(s framework.Solution) float64 {
			return objectives.OccupancyGap(p.Outcomes(s), p.target)
		},
		func(s framework.Solution) float64 {
			return objectives.DemandDrop(p.Outcomes(s))
		},
		func(s framework.Solution) float64 {
			return objectives.UserBalance(p.Outcomes(s))
		},
	}
}

// Constraints is empty: the problem is box-constrained only, and bounds are
// enforced by the variation operators' repair step.
func (p *FeeProblem) Constraints() []framework.Constraint {
	return nil
}

func (p *FeeProblem) Bounds() []framework.Bounds {
	return p.enc.Bounds()
}

func (p *FeeProblem) Initialize(rng *rand.Rand, popSize int) []framework.Solution {
	b := p.enc.Bounds()
	population := make([]framework.Solution, popSize)
	for i := 0; i < popSize; i++ {
		vars := make([]float64, len(b))
		for j := range b {
			vars[j] = b[j].L + rng.Float64()*(b[j].H-b[j].L)
		}
		population[i] = framework.NewRealSolution(vars, b)
	}
	return population
}
