package pathfind

import (
	"testing"

	"villageforge/internal/model"
	"villageforge/internal/testworld"
	"villageforge/internal/worldapi"
)

func TestFindPathFlatGround(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	p := New(w, nil, nil)
	result := p.FindPath(worldapi.BlockCoord{X: 0, Y: 65, Z: 0}, worldapi.BlockCoord{X: 20, Y: 65, Z: 0})
	if !result.Found {
		t.Fatal("expected a path across flat ground")
	}
	if result.Hash == "" {
		t.Fatal("expected a non-empty path hash")
	}
}

func TestFindPathTooShortIsRejected(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	p := New(w, nil, nil)
	result := p.FindPath(worldapi.BlockCoord{X: 0, Y: 65, Z: 0}, worldapi.BlockCoord{X: 1, Y: 65, Z: 0})
	if result.Found {
		t.Fatal("expected a too-short route to be rejected by the range precheck")
	}
}

func TestFindPathTooFarIsRejected(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	p := New(w, nil, nil)
	p.MaxDistance = 50
	result := p.FindPath(worldapi.BlockCoord{X: 0, Y: 65, Z: 0}, worldapi.BlockCoord{X: 500, Y: 65, Z: 0})
	if result.Found {
		t.Fatal("expected an out-of-range route to be rejected by the range precheck")
	}
}

func TestFindPathIsDeterministic(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	start := worldapi.BlockCoord{X: 0, Y: 65, Z: 0}
	goal := worldapi.BlockCoord{X: 15, Y: 65, Z: 10}

	p1 := New(w, nil, nil)
	r1 := p1.FindPath(start, goal)
	p2 := New(w, nil, nil)
	r2 := p2.FindPath(start, goal)

	if !r1.Found || !r2.Found {
		t.Fatal("expected both searches to find a path")
	}
	if r1.Hash != r2.Hash {
		t.Fatalf("expected identical path hashes across runs, got %s vs %s", r1.Hash, r2.Hash)
	}
}

func TestFindPathAvoidsMaskedVolume(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	mask := model.VolumeMask{
		Bounds: worldapi.Bounds{
			Min: worldapi.BlockCoord{X: 5, Y: 64, Z: -10},
			Max: worldapi.BlockCoord{X: 7, Y: 70, Z: 10},
		},
	}
	p := New(w, nil, []model.VolumeMask{mask})
	result := p.FindPath(worldapi.BlockCoord{X: 0, Y: 65, Z: 0}, worldapi.BlockCoord{X: 12, Y: 65, Z: 0})
	if !result.Found {
		t.Fatal("expected a detour around the masked volume to be found")
	}
	for _, b := range result.Path {
		if mask.Contains(b.X, b.Y, b.Z) {
			t.Fatalf("path entered masked volume at %v", b)
		}
	}
}

func TestFindPathRespectsNodeBudget(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	p := New(w, nil, nil)
	p.MaxNodes = 1
	result := p.FindPath(worldapi.BlockCoord{X: 0, Y: 65, Z: 0}, worldapi.BlockCoord{X: 30, Y: 65, Z: 0})
	if result.Found {
		t.Fatal("expected a tiny node budget to exhaust before reaching the goal")
	}
}

func TestStepCostObstructionIsImpassable(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	p := New(w, nil, nil)
	if err := w.SetBlock(1, 65, 0, "bedrock", nil); err != nil {
		t.Fatal(err)
	}
	cost := p.stepCost(node{0, 65, 0}, node{1, 65, 0})
	if cost < ObstacleCost {
		t.Fatalf("expected obstruction to cost at least ObstacleCost, got %v", cost)
	}
}

func TestStepCostFluidAddsWaterCost(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	if err := w.SetBlock(1, 64, 0, "water", nil); err != nil {
		t.Fatal(err)
	}
	// Clear the column above the water so it isn't read as solid ground.
	if err := w.SetBlock(1, 65, 0, "air", nil); err != nil {
		t.Fatal(err)
	}
	p := New(w, nil, nil)
	cost := p.stepCost(node{0, 64, 0}, node{1, 64, 0})
	if cost < p.WaterCost {
		t.Fatalf("expected fluid step to include water cost, got %v", cost)
	}
}
