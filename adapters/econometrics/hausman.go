package econometrics

import (
	"fmt"

	"panelmc/ports"

	"gonum.org/v1/gonum/mat"
)

// HausmanTest computes the specification statistic
//
//	H = (b_FE - b_RE)' [V_FE - V_RE]⁻¹ (b_FE - b_RE)
//
// and its chi-squared(k) p-value. Under the null both estimators are
// consistent and RE is efficient; a low p-value rejects random effects.
// The covariance difference can be singular or indefinite in finite
// samples, which is reported as an error for the caller to classify.
func (m *Modeler) HausmanTest(fe, re *ports.FittedModel) (float64, error) {
	if fe == nil || re == nil {
		return 0, fmt.Errorf("hausman test requires two fitted models")
	}
	k := len(fe.Coefficients)
	if k == 0 || len(re.Coefficients) != k {
		return 0, fmt.Errorf("coefficient dimension mismatch: fe=%d re=%d", k, len(re.Coefficients))
	}

	diff := mat.NewVecDense(k, nil)
	gap := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		diff.SetVec(i, fe.Coefficients[i]-re.Coefficients[i])
		for j := 0; j < k; j++ {
			gap.Set(i, j, fe.Covariance[i][j]-re.Covariance[i][j])
		}
	}

	var gapInv mat.Dense
	if err := gapInv.Inverse(gap); err != nil {
		return 0, fmt.Errorf("covariance difference is singular: %w", err)
	}

	var tmp mat.VecDense
	tmp.MulVec(&gapInv, diff)
	stat := mat.Dot(diff, &tmp)

	if !isFinite(stat) {
		return 0, fmt.Errorf("non-finite hausman statistic")
	}
	if stat < 0 {
		return 0, fmt.Errorf("covariance difference is not positive definite (statistic %.6g)", stat)
	}

	p := chiSquaredSurvival(stat, float64(k))
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p, nil
}
