// Package pricing searches for parking fee policies that trade off revenue,
// occupancy-target deviation, demand suppression, and fairness across zones.
// It owns the zone data model, the elasticity response model, and the
// optimize/select entry points built on the NSGA-III engine.
package pricing

import "errors"

// Objective names used in selection weightings. Revenue and user balance are
// maximized, occupancy gap and demand drop are minimized.
const (
	ObjectiveRevenue      = "revenue"
	ObjectiveOccupancyGap = "occupancy_gap"
	ObjectiveDemandDrop   = "demand_drop"
	ObjectiveUserBalance  = "user_balance"
)

// ErrNoScenarios is returned by SelectBest when the result holds no
// scenarios to choose from.
var ErrNoScenarios = errors.New("no scenarios available")

// Zone is the immutable description of one parking zone. Zones sharing a
// non-empty ClusterGroup are constrained to receive identical fees.
type Zone struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Capacity         int     `json:"capacity"`
	CurrentFee       float64 `json:"current_fee"`
	CurrentOccupancy float64 `json:"current_occupancy"`
	MinFee           float64 `json:"min_fee"`
	MaxFee           float64 `json:"max_fee"`
	Elasticity       float64 `json:"elasticity"`
	ShortTermShare   float64 `json:"short_term_share"`
	ClusterGroup     string  `json:"cluster_group,omitempty"`
}

// Settings configures one optimization run. Zero-valued optional fields are
// replaced by defaults before the run starts.
type Settings struct {
	PopulationSize  int     `json:"population_size"`
	Generations     int     `json:"generations"`
	TargetOccupancy float64 `json:"target_occupancy"`

	// Seed makes runs reproducible; 0 selects the documented default seed.
	Seed uint64 `json:"seed,omitempty"`

	CrossoverProbability float64 `json:"crossover_probability,omitempty"`
	MutationProbability  float64 `json:"mutation_probability,omitempty"`
	ReferencePartitions  int     `json:"reference_partitions,omitempty"`
}

// SetDefaults_Settings fills optional Settings fields.
func SetDefaults_Settings(s *Settings) {
	if s.CrossoverProbability == 0 {
		s.CrossoverProbability = 0.9
	}
	if s.ReferencePartitions == 0 {
		s.ReferencePartitions = 6
	}
	// MutationProbability 0 is resolved to 1/genes by the engine, and
	// Seed 0 to the engine's default seed.
}

// ZoneProjection is the predicted outcome for one zone under a scenario's
// fee.
type ZoneProjection struct {
	ZoneID    string  `json:"zone_id"`
	Fee       float64 `json:"fee"`
	Occupancy float64 `json:"occupancy"`
	Revenue   float64 `json:"revenue"`
}

// Scores holds the four aggregate objective values of a scenario in their
// natural sense: Revenue and UserBalance are better when larger,
// OccupancyGap and DemandDrop when smaller.
type Scores struct {
	Revenue      float64 `json:"revenue"`
	OccupancyGap float64 `json:"occupancy_gap"`
	DemandDrop   float64 `json:"demand_drop"`
	UserBalance  float64 `json:"user_balance"`
}

// Scenario is one fee policy from the realized Pareto front. It is never
// mutated after construction.
type Scenario struct {
	ID     int              `json:"id"`
	Zones  []ZoneProjection `json:"zones"`
	Scores Scores           `json:"scores"`
}

// Result is the full set of final-generation scenarios plus run metadata.
// It is immutable once returned and safe for concurrent reads.
type Result struct {
	Scenarios      []Scenario `json:"scenarios"`
	Seed           uint64     `json:"seed"`
	PopulationSize int        `json:"population_size"`
	Generations    int        `json:"generations"`
}
