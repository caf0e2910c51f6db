package econometrics

import (
	"math"
	"math/rand"
	"testing"

	"panelmc/adapters/synth"
	"panelmc/domain/panel"
	"panelmc/ports"
)

func estimationRows(t *testing.T, n, periods, k int, seed int64) []panel.Row {
	t.Helper()
	g := synth.NewGenerator()
	p := g.Generate(synth.Config{Units: n, Periods: periods, Covariates: k}, rand.New(rand.NewSource(seed)))
	return p.Rows
}

func TestFitFixedEffects_RecoversCoefficients(t *testing.T) {
	m := NewModeler()
	rows := estimationRows(t, 200, 6, 2, 31)

	fit, err := m.FitFixedEffects(rows, 2)
	if err != nil {
		t.Fatalf("within estimation failed on clean panel: %v", err)
	}

	if fit.Observations != 1200 || fit.UnitsUsed != 200 {
		t.Errorf("bookkeeping wrong: n=%d units=%d", fit.Observations, fit.UnitsUsed)
	}

	// True slope on every covariate is 1.
	for j, b := range fit.Coefficients {
		if math.Abs(b-1.0) > 0.2 {
			t.Errorf("coefficient %d = %.4f, expected near 1", j, b)
		}
	}
	for i := range fit.Covariance {
		if fit.Covariance[i][i] <= 0 {
			t.Errorf("coefficient variance %d must be positive, got %g", i, fit.Covariance[i][i])
		}
	}
}

func TestFitRandomEffects_RecoversCoefficients(t *testing.T) {
	m := NewModeler()
	rows := estimationRows(t, 200, 6, 2, 37)

	fit, err := m.FitRandomEffects(rows, 2)
	if err != nil {
		t.Fatalf("GLS estimation failed on clean panel: %v", err)
	}

	if len(fit.Coefficients) != 2 {
		t.Fatalf("expected 2 slope coefficients (intercept dropped), got %d", len(fit.Coefficients))
	}
	for j, b := range fit.Coefficients {
		if math.Abs(b-1.0) > 0.2 {
			t.Errorf("coefficient %d = %.4f, expected near 1", j, b)
		}
	}
}

func TestHausmanTest_PValueInRange(t *testing.T) {
	m := NewModeler()
	rows := estimationRows(t, 300, 8, 3, 41)

	fe, err := m.FitFixedEffects(rows, 3)
	if err != nil {
		t.Fatalf("FE: %v", err)
	}
	re, err := m.FitRandomEffects(rows, 3)
	if err != nil {
		t.Fatalf("RE: %v", err)
	}

	p, err := m.HausmanTest(fe, re)
	if err != nil {
		// Finite-sample covariance gaps can be indefinite; that is a
		// classified failure, not a bug, but it should be rare on a clean
		// panel of this size.
		t.Fatalf("hausman test failed: %v", err)
	}
	if p < 0 || p > 1 {
		t.Errorf("p-value out of range: %g", p)
	}
}

func TestFitFixedEffects_SingularDesign(t *testing.T) {
	m := NewModeler()
	rows := estimationRows(t, 50, 5, 2, 43)

	// Duplicate the first covariate so the demeaned design is rank deficient.
	for i := range rows {
		rows[i].Covariates[1] = rows[i].Covariates[0]
	}

	if _, err := m.FitFixedEffects(rows, 2); err == nil {
		t.Error("expected an error for a singular design matrix")
	}
}

func TestFitFixedEffects_InsufficientDegreesOfFreedom(t *testing.T) {
	m := NewModeler()
	// 2 units x 2 periods with k=2: dof = 4 - 2 - 2 = 0.
	rows := estimationRows(t, 2, 2, 2, 47)

	if _, err := m.FitFixedEffects(rows, 2); err == nil {
		t.Error("expected an error when residual degrees of freedom are exhausted")
	}
}

func TestFitRandomEffects_InsufficientUnits(t *testing.T) {
	m := NewModeler()
	// Between regression needs units > k+1; 3 units with k=2 leaves dof 0.
	rows := estimationRows(t, 3, 8, 2, 53)

	if _, err := m.FitRandomEffects(rows, 2); err == nil {
		t.Error("expected an error when the between regression is unidentified")
	}
}

func TestHausmanTest_DimensionMismatch(t *testing.T) {
	m := NewModeler()
	fe := identityModel(2)
	re := identityModel(3)

	if _, err := m.HausmanTest(fe, re); err == nil {
		t.Error("expected an error for mismatched coefficient dimensions")
	}
}

// identityModel builds a minimal fitted model with k unit coefficients and an
// identity covariance.
func identityModel(k int) *ports.FittedModel {
	cov := make([][]float64, k)
	coef := make([]float64, k)
	for i := range cov {
		cov[i] = make([]float64, k)
		cov[i][i] = 1
		coef[i] = 1
	}
	return &ports.FittedModel{Coefficients: coef, Covariance: cov}
}
