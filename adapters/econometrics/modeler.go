// Package econometrics binds the statistical-modeling capability the trial
// runner consumes: fixed-effects (within) estimation, random-effects GLS
// estimation, and the Hausman specification test, all on gonum linear
// algebra. Ill-conditioned input surfaces as errors, never panics.
package econometrics

import (
	"fmt"
	"math"
	"sort"

	"panelmc/domain/panel"
	"panelmc/ports"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Modeler implements ports.PanelModeler.
type Modeler struct{}

// NewModeler creates the gonum-backed panel modeler.
func NewModeler() *Modeler {
	return &Modeler{}
}

var _ ports.PanelModeler = (*Modeler)(nil)

// olsFit is the shared output of an ordinary least squares solve.
type olsFit struct {
	beta   []float64
	cov    *mat.Dense // sigma² · (X'X)⁻¹
	rss    float64
	sigma2 float64
}

// solveOLS runs least squares of y on X with the given residual degrees of
// freedom. It fails on a singular cross-product matrix or non-finite output.
func solveOLS(X *mat.Dense, y *mat.VecDense, dof int) (*olsFit, error) {
	n, p := X.Dims()
	if dof <= 0 {
		return nil, fmt.Errorf("insufficient degrees of freedom: n=%d params=%d dof=%d", n, p, dof)
	}

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("singular design matrix: %w", err)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	var fitted mat.VecDense
	fitted.MulVec(X, &beta)

	rss := 0.0
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		rss += r * r
	}

	sigma2 := rss / float64(dof)

	cov := mat.NewDense(p, p, nil)
	cov.Scale(sigma2, &xtxInv)

	coeffs := make([]float64, p)
	for j := 0; j < p; j++ {
		coeffs[j] = beta.AtVec(j)
		if !isFinite(coeffs[j]) {
			return nil, fmt.Errorf("non-finite coefficient at index %d", j)
		}
	}
	if !isFinite(sigma2) {
		return nil, fmt.Errorf("non-finite residual variance")
	}

	return &olsFit{beta: coeffs, cov: cov, rss: rss, sigma2: sigma2}, nil
}

// unitGroups indexes rows by unit id, with a deterministic unit order.
type unitGroups struct {
	order []int
	rows  map[int][]panel.Row
}

func groupByUnit(rows []panel.Row) unitGroups {
	g := unitGroups{rows: make(map[int][]panel.Row)}
	for _, r := range rows {
		if _, ok := g.rows[r.Unit]; !ok {
			g.order = append(g.order, r.Unit)
		}
		g.rows[r.Unit] = append(g.rows[r.Unit], r)
	}
	sort.Ints(g.order)
	return g
}

// unitMeans returns the within-unit means of the outcome and each covariate.
func unitMeans(rows []panel.Row, k int) (yMean float64, xMeans []float64) {
	xMeans = make([]float64, k)
	for _, r := range rows {
		yMean += r.Outcome
		for j := 0; j < k; j++ {
			xMeans[j] += r.Covariates[j]
		}
	}
	n := float64(len(rows))
	yMean /= n
	for j := range xMeans {
		xMeans[j] /= n
	}
	return yMean, xMeans
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// chiSquaredSurvival is P(X > x) for X ~ chi-squared(k).
func chiSquaredSurvival(x, k float64) float64 {
	return distuv.ChiSquared{K: k}.Survival(x)
}

func covToSlice(cov *mat.Dense, offset, k int) [][]float64 {
	out := make([][]float64, k)
	for i := 0; i < k; i++ {
		out[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			out[i][j] = cov.At(offset+i, offset+j)
		}
	}
	return out
}
