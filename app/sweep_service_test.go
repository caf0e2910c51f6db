package app

import (
	"context"
	"testing"

	"panelmc/adapters/econometrics"
	"panelmc/adapters/rng"
	"panelmc/adapters/synth"
	"panelmc/domain/scenario"
	"panelmc/internal"
)

func smallGrid() []scenario.Scenario {
	shapes := []scenario.Shape{
		{Name: "Tiny", Units: 30, Periods: 6},
		{Name: "Narrow", Units: 20, Periods: 2}, // infeasible for k >= 2
	}
	complexities := []scenario.Complexity{{Name: "Simple", Covariates: 2}}
	mechanisms := []scenario.Mechanism{scenario.MechanismRandom, scenario.MechanismEarlyExit}
	rates := []float64{0.10, 0.30}
	return scenario.Grid(shapes, complexities, mechanisms, rates)
}

func newTestSweep(seed int64, replications int) *SweepService {
	runner := NewTrialRunner(synth.NewGenerator(), econometrics.NewModeler(), 0.05)
	return NewSweepService(runner, rng.NewDeterministic(seed), internal.NewLogger(internal.LogLevelError), replications, 4)
}

func TestRunSweep_RecordCountAndExclusions(t *testing.T) {
	grid := smallGrid() // 2 shapes x 1 complexity x 2 mechanisms x 2 rates = 8 cells
	svc := newTestSweep(42, 3)

	res, err := svc.RunSweep(context.Background(), grid)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if res.Feasible != 4 || res.Excluded != 4 {
		t.Fatalf("partition wrong: feasible=%d excluded=%d", res.Feasible, res.Excluded)
	}
	if res.Table.Len() != 12 {
		t.Fatalf("expected 4 feasible scenarios x 3 replications = 12 records, got %d", res.Table.Len())
	}
	if len(res.Table.Excluded) != 4 {
		t.Fatalf("excluded scenarios not carried into the table: %d", len(res.Table.Excluded))
	}
	for _, ex := range res.Table.Excluded {
		if ex.Reason == "" {
			t.Error("excluded scenario missing its exclusion reason")
		}
	}

	// Every record must carry a populated scenario tag and a reason.
	for i, rec := range res.Table.Records {
		if rec.Scenario.Shape.Name == "" || rec.Scenario.Mechanism == "" {
			t.Fatalf("record %d has an empty scenario tag", i)
		}
		if rec.Reason == "" {
			t.Fatalf("record %d has no outcome reason", i)
		}
	}
}

func TestRunSweep_ReproducibleForMasterSeed(t *testing.T) {
	grid := smallGrid()

	a, err := newTestSweep(42, 2).RunSweep(context.Background(), grid)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	b, err := newTestSweep(42, 2).RunSweep(context.Background(), grid)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}

	if a.Table.Len() != b.Table.Len() {
		t.Fatalf("sweep sizes differ: %d vs %d", a.Table.Len(), b.Table.Len())
	}
	for i := range a.Table.Records {
		ra, rb := a.Table.Records[i], b.Table.Records[i]
		if ra.Outcome != rb.Outcome || ra.Reason != rb.Reason {
			t.Fatalf("record %d diverged: %s/%s vs %s/%s", i, ra.Outcome, ra.Reason, rb.Outcome, rb.Reason)
		}
		if (ra.PValue == nil) != (rb.PValue == nil) {
			t.Fatalf("record %d p-value presence diverged", i)
		}
		if ra.PValue != nil && *ra.PValue != *rb.PValue {
			t.Fatalf("record %d p-value diverged: %g vs %g", i, *ra.PValue, *rb.PValue)
		}
	}
}

func TestRunSweep_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestSweep(42, 2).RunSweep(ctx, smallGrid()); err == nil {
		t.Error("cancelled context should abort the sweep with an error")
	}
}
