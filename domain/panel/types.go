package panel

import "math"

// Row is one (unit, period) observation. A missing cell is math.NaN() in the
// outcome or covariate columns; the unit id, period and unit effect columns
// are never modified after generation.
type Row struct {
	Unit       int       `json:"unit"`
	Period     int       `json:"period"`
	UnitEffect float64   `json:"unit_effect"`
	Covariates []float64 `json:"covariates"`
	Outcome    float64   `json:"outcome"`
}

// OutcomeMissing reports whether the row's outcome cell has been nulled.
func (r Row) OutcomeMissing() bool {
	return math.IsNaN(r.Outcome)
}

// Complete reports whether the row has no missing outcome or covariate cell.
func (r Row) Complete() bool {
	if math.IsNaN(r.Outcome) {
		return false
	}
	for _, v := range r.Covariates {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Panel is a dense balanced panel of Units×Periods rows, ordered unit-major
// with periods 1..Periods inside each unit.
type Panel struct {
	Units      int   `json:"units"`
	Periods    int   `json:"periods"`
	Covariates int   `json:"covariates"`
	Rows       []Row `json:"rows"`
}

// Clone returns a deep copy; injection strategies mutate the copy so callers
// can keep the complete panel.
func (p *Panel) Clone() *Panel {
	out := &Panel{
		Units:      p.Units,
		Periods:    p.Periods,
		Covariates: p.Covariates,
		Rows:       make([]Row, len(p.Rows)),
	}
	for i, r := range p.Rows {
		cov := make([]float64, len(r.Covariates))
		copy(cov, r.Covariates)
		r.Covariates = cov
		out.Rows[i] = r
	}
	return out
}

// NullRow replaces the outcome and every covariate of row i with the missing
// marker. The row itself stays in place.
func (p *Panel) NullRow(i int) {
	p.Rows[i].Outcome = math.NaN()
	for j := range p.Rows[i].Covariates {
		p.Rows[i].Covariates[j] = math.NaN()
	}
}

// ObservedOutcomeCounts returns, per unit id, the number of rows whose
// outcome is not missing.
func (p *Panel) ObservedOutcomeCounts() map[int]int {
	counts := make(map[int]int, p.Units)
	for _, r := range p.Rows {
		if !r.OutcomeMissing() {
			counts[r.Unit]++
		}
	}
	return counts
}

// CompleteRows returns the rows usable for complete-case estimation,
// restricted to the given unit set.
func (p *Panel) CompleteRows(keep map[int]bool) []Row {
	var rows []Row
	for _, r := range p.Rows {
		if keep[r.Unit] && r.Complete() {
			rows = append(rows, r)
		}
	}
	return rows
}
