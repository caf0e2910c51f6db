package econometrics

import (
	"fmt"

	"panelmc/domain/panel"
	"panelmc/ports"

	"gonum.org/v1/gonum/mat"
)

// FitFixedEffects estimates the within model: outcome and covariates are
// demeaned inside each unit, which removes the unit-specific intercepts, and
// the slopes come from OLS on the demeaned data. Residual degrees of freedom
// account for the N absorbed intercepts.
func (m *Modeler) FitFixedEffects(rows []panel.Row, k int) (*ports.FittedModel, error) {
	fit, groups, err := withinFit(rows, k)
	if err != nil {
		return nil, err
	}

	return &ports.FittedModel{
		Coefficients: fit.beta,
		Covariance:   covToSlice(fit.cov, 0, k),
		Observations: len(rows),
		UnitsUsed:    len(groups.order),
	}, nil
}

// withinFit is shared with the random-effects estimator, which needs the
// within residual variance for its variance-component decomposition.
func withinFit(rows []panel.Row, k int) (*olsFit, unitGroups, error) {
	if k < 1 {
		return nil, unitGroups{}, fmt.Errorf("fixed effects requires at least one covariate, got %d", k)
	}
	if len(rows) == 0 {
		return nil, unitGroups{}, fmt.Errorf("no observations")
	}

	groups := groupByUnit(rows)
	n := len(rows)
	nUnits := len(groups.order)

	X, y := demeanedMatrices(groups, n, k)

	dof := n - nUnits - k
	fit, err := solveOLS(X, y, dof)
	if err != nil {
		return nil, groups, fmt.Errorf("within estimation: %w", err)
	}
	return fit, groups, nil
}

// demeanedMatrices builds the within-transformed design matrix and outcome
// vector, unit by unit.
func demeanedMatrices(groups unitGroups, n, k int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, k, nil)
	y := mat.NewVecDense(n, nil)

	i := 0
	for _, unit := range groups.order {
		unitRows := groups.rows[unit]
		yMean, xMeans := unitMeans(unitRows, k)
		for _, r := range unitRows {
			y.SetVec(i, r.Outcome-yMean)
			for j := 0; j < k; j++ {
				X.Set(i, j, r.Covariates[j]-xMeans[j])
			}
			i++
		}
	}
	return X, y
}
