package results

import (
	"panelmc/domain/scenario"
	"panelmc/domain/trial"

	"github.com/montanaflynn/stats"
)

// Table is the flat collection of all trial records across feasible
// scenarios and replications. Row order is incidental; the table is
// logically order-independent.
type Table struct {
	Records  []trial.Record      `json:"records"`
	Excluded []scenario.Excluded `json:"excluded"`
}

// Append concatenates records onto the table. No filtering or transformation
// happens here: failed trials are retained so downstream failure-rate
// statistics stay unbiased.
func (t *Table) Append(records ...trial.Record) {
	t.Records = append(t.Records, records...)
}

// Len returns the number of trial records.
func (t *Table) Len() int { return len(t.Records) }

// MechanismSummary is the per-mechanism roll-up logged at the end of a run.
// Full statistical reporting (ANOVA, pairwise comparisons, plots) happens in
// an external collaborator consuming the raw table.
type MechanismSummary struct {
	Mechanism   scenario.Mechanism `json:"mechanism"`
	Trials      int                `json:"trials"`
	Successes   int                `json:"successes"`
	SuccessRate float64            `json:"success_rate"`
	FailureRate float64            `json:"failure_rate"`
	MeanPValue  float64            `json:"mean_p_value"`
	Specificity float64            `json:"specificity"`
}

// SummarizeByMechanism computes success/failure rates per mechanism.
// success_rate + failure_rate = 1 exactly for every mechanism with trials.
func (t *Table) SummarizeByMechanism() []MechanismSummary {
	byMech := make(map[scenario.Mechanism]*MechanismSummary)
	pValues := make(map[scenario.Mechanism][]float64)
	specs := make(map[scenario.Mechanism][]float64)
	var order []scenario.Mechanism

	for _, r := range t.Records {
		m := r.Scenario.Mechanism
		s, ok := byMech[m]
		if !ok {
			s = &MechanismSummary{Mechanism: m}
			byMech[m] = s
			order = append(order, m)
		}
		s.Trials++
		if r.Succeeded() {
			s.Successes++
			pValues[m] = append(pValues[m], *r.PValue)
			specs[m] = append(specs[m], float64(*r.Specificity))
		}
	}

	out := make([]MechanismSummary, 0, len(order))
	for _, m := range order {
		s := byMech[m]
		s.SuccessRate = float64(s.Successes) / float64(s.Trials)
		s.FailureRate = 1 - float64(s.Successes)/float64(s.Trials)
		if len(pValues[m]) > 0 {
			s.MeanPValue, _ = stats.Mean(pValues[m])
			s.Specificity, _ = stats.Mean(specs[m])
		}
		out = append(out, *s)
	}
	return out
}
