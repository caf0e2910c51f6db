package ports

import "panelmc/domain/panel"

// FittedModel is the output of a panel estimator: k slope coefficients and
// their k×k covariance matrix.
type FittedModel struct {
	Coefficients []float64   `json:"coefficients"`
	Covariance   [][]float64 `json:"covariance"`
	Observations int         `json:"observations"`
	UnitsUsed    int         `json:"units_used"`
}

// PanelModeler is the statistical-modeling capability consumed by the trial
// runner. Implementations may fail on ill-conditioned or rank-deficient
// input (singular design matrix, degenerate variance components, non-PD
// covariance gap); callers must catch and classify those errors rather than
// propagate them.
type PanelModeler interface {
	// FitFixedEffects estimates the within (unit-demeaned) model on the rows.
	FitFixedEffects(rows []panel.Row, k int) (*FittedModel, error)

	// FitRandomEffects estimates a GLS-type random-effects model on the rows.
	FitRandomEffects(rows []panel.Row, k int) (*FittedModel, error)

	// HausmanTest compares the two fitted models and returns the p-value of
	// the specification test. A low p-value rejects random effects.
	HausmanTest(fe, re *FittedModel) (float64, error)
}
