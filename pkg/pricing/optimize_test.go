package pricing_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cityops/parkfee/pkg/pricing"
)

func testZones() []pricing.Zone {
	return []pricing.Zone{
		{
			ID: "north", Name: "North Garage", Capacity: 200, CurrentFee: 2.0,
			CurrentOccupancy: 0.95, MinFee: 1.0, MaxFee: 5.0, Elasticity: -0.6,
			ShortTermShare: 0.4,
		},
		{
			ID: "center-a", Name: "Center A", Capacity: 120, CurrentFee: 3.0,
			CurrentOccupancy: 0.85, MinFee: 1.5, MaxFee: 6.0, Elasticity: -0.4,
			ShortTermShare: 0.7, ClusterGroup: "center",
		},
		{
			ID: "center-b", Name: "Center B", Capacity: 80, CurrentFee: 3.0,
			CurrentOccupancy: 0.9, MinFee: 2.0, MaxFee: 5.5, Elasticity: -0.5,
			ShortTermShare: 0.6, ClusterGroup: "center",
		},
		{
			ID: "south", Name: "South Lot", Capacity: 300, CurrentFee: 1.0,
			CurrentOccupancy: 0.4, MinFee: 0.5, MaxFee: 3.0, Elasticity: -1.1,
			ShortTermShare: 0.2,
		},
	}
}

func testSettings() pricing.Settings {
	return pricing.Settings{
		PopulationSize:  20,
		Generations:     10,
		TargetOccupancy: 0.85,
	}
}

func TestOptimizeProducesValidScenarios(t *testing.T) {
	zones := testZones()
	result, err := pricing.Optimize(context.Background(), zones, testSettings())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(result.Scenarios) == 0 {
		t.Fatal("result has no scenarios")
	}
	if len(result.Scenarios) > 20 {
		t.Fatalf("got %d scenarios, want at most the population size", len(result.Scenarios))
	}

	byID := make(map[string]pricing.Zone, len(zones))
	for _, z := range zones {
		byID[z.ID] = z
	}

	for _, s := range result.Scenarios {
		if len(s.Zones) != len(zones) {
			t.Fatalf("scenario %d projects %d zones, want %d", s.ID, len(s.Zones), len(zones))
		}

		var centerFee float64
		centerSeen := false
		for _, p := range s.Zones {
			z := byID[p.ZoneID]
			if p.Fee < z.MinFee || p.Fee > z.MaxFee {
				t.Errorf("scenario %d: zone %s fee %v outside [%v, %v]", s.ID, z.ID, p.Fee, z.MinFee, z.MaxFee)
			}
			if p.Occupancy < 0 || p.Occupancy > 1 {
				t.Errorf("scenario %d: zone %s occupancy %v outside [0, 1]", s.ID, z.ID, p.Occupancy)
			}

			if z.ClusterGroup == "center" {
				if centerSeen && p.Fee != centerFee {
					t.Errorf("scenario %d: cluster group fees differ: %v vs %v", s.ID, p.Fee, centerFee)
				}
				centerFee = p.Fee
				centerSeen = true
			}
		}

		if s.Scores.Revenue < 0 {
			t.Errorf("scenario %d: negative total revenue %v", s.ID, s.Scores.Revenue)
		}
		if s.Scores.UserBalance > 0 {
			t.Errorf("scenario %d: user balance %v, want negated variance <= 0", s.ID, s.Scores.UserBalance)
		}
	}

	// IDs follow enumeration order.
	for i, s := range result.Scenarios {
		if s.ID != i {
			t.Errorf("scenario at position %d has id %d", i, s.ID)
		}
	}
}

func TestOptimizeDeterminism(t *testing.T) {
	settings := testSettings()
	settings.Seed = 7

	first, err := pricing.Optimize(context.Background(), testZones(), settings)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := pricing.Optimize(context.Background(), testZones(), settings)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed produced different results (-first +second):\n%s", diff)
	}
}

func TestOptimizeDefaultSeedIsFixed(t *testing.T) {
	result, err := pricing.Optimize(context.Background(), testZones(), testSettings())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.Seed != 42 {
		t.Errorf("unseeded run recorded seed %d, want the documented default 42", result.Seed)
	}
}

func TestOptimizeSmallestRun(t *testing.T) {
	settings := pricing.Settings{PopulationSize: 10, Generations: 1, TargetOccupancy: 0.8}
	result, err := pricing.Optimize(context.Background(), testZones(), settings)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if len(result.Scenarios) == 0 || len(result.Scenarios) > 10 {
		t.Errorf("got %d scenarios, want between 1 and 10", len(result.Scenarios))
	}
}

func TestOptimizeConfigurationErrors(t *testing.T) {
	scenarios := []struct {
		name     string
		zones    []pricing.Zone
		settings pricing.Settings
	}{
		{
			name:     "EmptyZoneList",
			zones:    nil,
			settings: testSettings(),
		},
		{
			name:     "PopulationTooSmall",
			zones:    testZones(),
			settings: pricing.Settings{PopulationSize: 9, Generations: 5, TargetOccupancy: 0.8},
		},
		{
			name:     "NoGenerations",
			zones:    testZones(),
			settings: pricing.Settings{PopulationSize: 10, Generations: 0, TargetOccupancy: 0.8},
		},
		{
			name: "ConflictingClusterBounds",
			zones: []pricing.Zone{
				{ID: "a", Capacity: 10, CurrentFee: 1, CurrentOccupancy: 0.5, MinFee: 1, MaxFee: 2, Elasticity: -1, ClusterGroup: "g"},
				{ID: "b", Capacity: 10, CurrentFee: 1, CurrentOccupancy: 0.5, MinFee: 3, MaxFee: 4, Elasticity: -1, ClusterGroup: "g"},
			},
			settings: testSettings(),
		},
		{
			name: "PositiveElasticity",
			zones: []pricing.Zone{
				{ID: "a", Capacity: 10, CurrentFee: 1, CurrentOccupancy: 0.5, MinFee: 1, MaxFee: 2, Elasticity: 0.5},
			},
			settings: testSettings(),
		},
	}

	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := pricing.Optimize(context.Background(), tc.zones, tc.settings); err == nil {
				t.Error("expected a configuration error")
			}
		})
	}
}

func TestOptimizeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pricing.Optimize(ctx, testZones(), testSettings()); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
