package econometrics

import (
	"fmt"
	"math"

	"panelmc/domain/panel"
	"panelmc/ports"

	"gonum.org/v1/gonum/mat"
)

// FitRandomEffects estimates a Swamy-Arora random-effects model: variance
// components come from the within residuals and a between (unit-means)
// regression, each observation is quasi-demeaned by its unit's theta, and
// the slopes come from OLS on the transformed data with an intercept.
// The panel may be unbalanced after missingness injection, so theta varies
// by unit.
func (m *Modeler) FitRandomEffects(rows []panel.Row, k int) (*ports.FittedModel, error) {
	within, groups, err := withinFit(rows, k)
	if err != nil {
		return nil, fmt.Errorf("random effects: %w", err)
	}

	n := len(rows)
	nUnits := len(groups.order)
	sigmaE2 := within.sigma2

	sigmaU2, err := betweenVariance(groups, k, sigmaE2)
	if err != nil {
		return nil, fmt.Errorf("random effects: %w", err)
	}

	// Quasi-demeaned regression with an explicit intercept column scaled by
	// 1-theta_i.
	X := mat.NewDense(n, k+1, nil)
	y := mat.NewVecDense(n, nil)

	i := 0
	for _, unit := range groups.order {
		unitRows := groups.rows[unit]
		ti := float64(len(unitRows))
		theta := 1 - math.Sqrt(sigmaE2/(ti*sigmaU2+sigmaE2))
		yMean, xMeans := unitMeans(unitRows, k)

		for _, r := range unitRows {
			y.SetVec(i, r.Outcome-theta*yMean)
			X.Set(i, 0, 1-theta)
			for j := 0; j < k; j++ {
				X.Set(i, j+1, r.Covariates[j]-theta*xMeans[j])
			}
			i++
		}
	}

	dof := n - k - 1
	fit, err := solveOLS(X, y, dof)
	if err != nil {
		return nil, fmt.Errorf("random effects GLS: %w", err)
	}

	return &ports.FittedModel{
		Coefficients: fit.beta[1:], // drop the intercept
		Covariance:   covToSlice(fit.cov, 1, k),
		Observations: n,
		UnitsUsed:    nUnits,
	}, nil
}

// betweenVariance estimates the unit-effect variance sigma_u² from the
// between regression of unit means on unit mean covariates. Negative
// estimates are clamped to a small positive floor so theta stays defined.
func betweenVariance(groups unitGroups, k int, sigmaE2 float64) (float64, error) {
	nUnits := len(groups.order)
	dof := nUnits - k - 1
	if dof <= 0 {
		return 0, fmt.Errorf("insufficient units for between regression: units=%d k=%d", nUnits, k)
	}

	X := mat.NewDense(nUnits, k+1, nil)
	y := mat.NewVecDense(nUnits, nil)
	avgT := 0.0

	for i, unit := range groups.order {
		unitRows := groups.rows[unit]
		avgT += float64(len(unitRows))
		yMean, xMeans := unitMeans(unitRows, k)
		y.SetVec(i, yMean)
		X.Set(i, 0, 1)
		for j := 0; j < k; j++ {
			X.Set(i, j+1, xMeans[j])
		}
	}
	avgT /= float64(nUnits)

	fit, err := solveOLS(X, y, dof)
	if err != nil {
		return 0, fmt.Errorf("between regression: %w", err)
	}

	sigmaU2 := fit.sigma2 - sigmaE2/avgT
	if sigmaU2 < 1e-12 {
		sigmaU2 = 1e-12
	}
	if !isFinite(sigmaU2) {
		return 0, fmt.Errorf("non-finite unit-effect variance")
	}
	return sigmaU2, nil
}
