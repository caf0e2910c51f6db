package scenario

import "testing"

func TestDefaultGrid_Size(t *testing.T) {
	grid := DefaultGrid()
	if len(grid) != 192 {
		t.Fatalf("expected 192 scenarios in the reference grid, got %d", len(grid))
	}
}

func TestPartition_ExhaustiveAndDisjoint(t *testing.T) {
	grid := DefaultGrid()
	feasible, excluded := Partition(grid)

	if len(feasible)+len(excluded) != len(grid) {
		t.Fatalf("partition not exhaustive: %d + %d != %d", len(feasible), len(excluded), len(grid))
	}
	if len(feasible) != 144 {
		t.Errorf("expected 144 feasible scenarios, got %d", len(feasible))
	}
	if len(excluded) != 48 {
		t.Errorf("expected 48 excluded scenarios, got %d", len(excluded))
	}

	for _, s := range feasible {
		if s.Shape.Periods < s.Complexity.Covariates+1 {
			t.Errorf("feasible scenario %s violates T >= k+1", s.Key())
		}
	}
	for _, ex := range excluded {
		if ex.Scenario.Shape.Periods >= ex.Scenario.Complexity.Covariates+1 {
			t.Errorf("excluded scenario %s satisfies T >= k+1", ex.Scenario.Key())
		}
		if ex.Reason == "" {
			t.Errorf("excluded scenario %s has no reason", ex.Scenario.Key())
		}
	}

	seen := make(map[string]bool)
	for _, s := range feasible {
		seen[s.Key()] = true
	}
	for _, ex := range excluded {
		if seen[ex.Scenario.Key()] {
			t.Errorf("scenario %s appears in both partitions", ex.Scenario.Key())
		}
	}
}

func TestFeasible_ReferenceCases(t *testing.T) {
	highDim := Complexity{Name: "High-Dimensional", Covariates: 10}

	wide := Scenario{
		Shape:      Shape{Name: "Wide Panel", Units: 400, Periods: 4},
		Complexity: highDim,
	}
	if wide.Feasible() {
		t.Error("Wide Panel with 10 covariates should be infeasible (4 < 11)")
	}

	long := Scenario{
		Shape:      Shape{Name: "Long Panel", Units: 100, Periods: 16},
		Complexity: highDim,
	}
	if !long.Feasible() {
		t.Error("Long Panel with 10 covariates should be feasible (16 >= 11)")
	}
}
