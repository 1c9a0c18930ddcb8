package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cityops/parkfee/pkg/pricing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	result := &pricing.Result{
		Scenarios: []pricing.Scenario{
			{ID: 0, Scores: pricing.Scores{Revenue: 120}},
		},
		Seed:           42,
		PopulationSize: 50,
		Generations:    100,
	}

	id, err := store.SaveRun(ctx, result)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id != 1 {
		t.Errorf("first run got id %d, want 1", id)
	}

	got, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if diff := cmp.Diff(result, got); diff != "" {
		t.Errorf("stored run differs (-want +got):\n%s", diff)
	}
}

func TestMemoryStoreSequentialIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		id, err := store.SaveRun(ctx, &pricing.Result{})
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
		if id != want {
			t.Errorf("got id %d, want %d", id, want)
		}
	}
}

func TestMemoryStoreUnknownRun(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.GetRun(context.Background(), 7); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("got %v, want ErrRunNotFound", err)
	}
}
