package pricing_test

import (
	"errors"
	"testing"

	"github.com/cityops/parkfee/pkg/pricing"
)

func resultWith(scores ...pricing.Scores) *pricing.Result {
	result := &pricing.Result{}
	for i, s := range scores {
		result.Scenarios = append(result.Scenarios, pricing.Scenario{ID: i, Scores: s})
	}
	return result
}

func TestSelectBestSingleObjective(t *testing.T) {
	result := resultWith(
		pricing.Scores{Revenue: 100},
		pricing.Scores{Revenue: 150},
		pricing.Scores{Revenue: 80},
	)

	best, err := pricing.SelectBest(result, map[string]int{pricing.ObjectiveRevenue: 1})
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.ID != 1 {
		t.Errorf("picked scenario %d, want the highest-revenue one (1)", best.ID)
	}
}

func TestSelectBestMinimizedObjective(t *testing.T) {
	result := resultWith(
		pricing.Scores{OccupancyGap: 0.4},
		pricing.Scores{OccupancyGap: 0.1},
		pricing.Scores{OccupancyGap: 0.25},
	)

	best, err := pricing.SelectBest(result, map[string]int{pricing.ObjectiveOccupancyGap: 2})
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.ID != 1 {
		t.Errorf("picked scenario %d, want the lowest-gap one (1)", best.ID)
	}
}

func TestSelectBestTradesOffWeights(t *testing.T) {
	// Scenario 0 has the most revenue but also the largest demand drop.
	result := resultWith(
		pricing.Scores{Revenue: 200, DemandDrop: 1.0},
		pricing.Scores{Revenue: 150, DemandDrop: 0.1},
		pricing.Scores{Revenue: 100, DemandDrop: 0.0},
	)

	weights := map[string]int{
		pricing.ObjectiveRevenue:    1,
		pricing.ObjectiveDemandDrop: 3,
	}
	best, err := pricing.SelectBest(result, weights)
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.ID != 1 {
		t.Errorf("picked scenario %d, want the compromise (1)", best.ID)
	}
}

func TestSelectBestTieBreaksOnID(t *testing.T) {
	// Identical scores everywhere, so every weighted sum ties.
	result := resultWith(
		pricing.Scores{Revenue: 100, UserBalance: -0.1},
		pricing.Scores{Revenue: 100, UserBalance: -0.1},
		pricing.Scores{Revenue: 100, UserBalance: -0.1},
	)

	best, err := pricing.SelectBest(result, map[string]int{pricing.ObjectiveRevenue: 5})
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.ID != 0 {
		t.Errorf("picked scenario %d, want the lowest id on a tie", best.ID)
	}
}

func TestSelectBestZeroRangeIsNeutral(t *testing.T) {
	// Revenue is constant so only user balance should decide.
	result := resultWith(
		pricing.Scores{Revenue: 100, UserBalance: -0.3},
		pricing.Scores{Revenue: 100, UserBalance: -0.05},
	)

	weights := map[string]int{
		pricing.ObjectiveRevenue:     10,
		pricing.ObjectiveUserBalance: 1,
	}
	best, err := pricing.SelectBest(result, weights)
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.ID != 1 {
		t.Errorf("picked scenario %d, want the better-balance one (1)", best.ID)
	}
}

func TestSelectBestNoScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		result *pricing.Result
	}{
		{"NilResult", nil},
		{"EmptyResult", &pricing.Result{}},
	}
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.SelectBest(tc.result, map[string]int{pricing.ObjectiveRevenue: 1})
			if !errors.Is(err, pricing.ErrNoScenarios) {
				t.Errorf("got %v, want ErrNoScenarios", err)
			}
		})
	}
}

func TestSelectBestRejectsUnknownObjective(t *testing.T) {
	result := resultWith(pricing.Scores{Revenue: 100})
	if _, err := pricing.SelectBest(result, map[string]int{"throughput": 1}); err == nil {
		t.Error("expected an error for an unknown objective name")
	}
}
