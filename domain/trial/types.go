package trial

import "panelmc/domain/scenario"

// Outcome is the terminal classification of one replication. The values are
// totally ordered by pipeline stage: each trial fails at the first stage that
// cannot complete, or succeeds.
type Outcome string

const (
	OutcomeDataFailure    Outcome = "data_failure"
	OutcomeModelFailureFE Outcome = "model_failure_fe"
	OutcomeModelFailureRE Outcome = "model_failure_re"
	OutcomeHausmanFailure Outcome = "hausman_failure"
	OutcomeSystemError    Outcome = "system_error"
	OutcomeSuccess        Outcome = "success"
)

// Reason strings reported in the results table. Downstream failure-rate
// tables match on these exactly.
const (
	ReasonSuccess        = "Success"
	ReasonDataFailure    = "Data Failure: Insufficient individuals"
	ReasonModelFailureFE = "Model Failure: FE model failed"
	ReasonModelFailureRE = "Model Failure: RE model failed"
	ReasonHausmanFailure = "Hausman Test Failure"
	ReasonSystemError    = "System Error"
)

// Record is the atomic unit of output: one replication's result tagged with
// its scenario. Immutable once produced.
type Record struct {
	Scenario    scenario.Scenario `json:"scenario"`
	Replication int               `json:"replication"`
	Outcome     Outcome           `json:"outcome"`
	Reason      string            `json:"reason"`
	PValue      *float64          `json:"p_value,omitempty"`
	Specificity *int              `json:"specificity,omitempty"`
}

// Succeeded reports whether the trial reached a Hausman p-value.
func (r Record) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Success builds a successful record with the derived specificity indicator:
// 1 when the test fails to reject at alpha, 0 otherwise.
func Success(s scenario.Scenario, rep int, pValue, alpha float64) Record {
	spec := 0
	if pValue > alpha {
		spec = 1
	}
	p := pValue
	return Record{
		Scenario:    s,
		Replication: rep,
		Outcome:     OutcomeSuccess,
		Reason:      ReasonSuccess,
		PValue:      &p,
		Specificity: &spec,
	}
}

// Failure builds a failed record. P-value and specificity stay absent.
func Failure(s scenario.Scenario, rep int, outcome Outcome, reason string) Record {
	return Record{
		Scenario:    s,
		Replication: rep,
		Outcome:     outcome,
		Reason:      reason,
	}
}
