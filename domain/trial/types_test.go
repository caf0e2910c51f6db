package trial

import (
	"testing"

	"panelmc/domain/scenario"
)

func testScenario() scenario.Scenario {
	return scenario.Scenario{
		Shape:       scenario.Shape{Name: "Wide Panel", Units: 400, Periods: 4},
		Complexity:  scenario.Complexity{Name: "Simple", Covariates: 1},
		Mechanism:   scenario.MechanismRandom,
		DropoutRate: 0.10,
	}
}

func TestSuccess_SpecificityIndicator(t *testing.T) {
	cases := []struct {
		name   string
		pValue float64
		want   int
	}{
		{"above threshold", 0.20, 1},
		{"just above threshold", 0.0500001, 1},
		{"at threshold", 0.05, 0},
		{"below threshold", 0.01, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Success(testScenario(), 0, tc.pValue, 0.05)
			if rec.Outcome != OutcomeSuccess || rec.Reason != ReasonSuccess {
				t.Fatalf("unexpected classification: %s / %s", rec.Outcome, rec.Reason)
			}
			if rec.PValue == nil || *rec.PValue != tc.pValue {
				t.Fatalf("p-value not carried: %v", rec.PValue)
			}
			if rec.Specificity == nil {
				t.Fatal("specificity should be present on success")
			}
			if *rec.Specificity != tc.want {
				t.Errorf("specificity for p=%.4f: got %d, want %d", tc.pValue, *rec.Specificity, tc.want)
			}
		})
	}
}

func TestFailure_AbsentPValueAndSpecificity(t *testing.T) {
	rec := Failure(testScenario(), 3, OutcomeDataFailure, ReasonDataFailure)

	if rec.PValue != nil {
		t.Error("failed trial should have absent p-value")
	}
	if rec.Specificity != nil {
		t.Error("failed trial should have absent specificity")
	}
	if rec.Succeeded() {
		t.Error("failure record reports success")
	}
	if rec.Replication != 3 {
		t.Errorf("replication index not carried: %d", rec.Replication)
	}
}
