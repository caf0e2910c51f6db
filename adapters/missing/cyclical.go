package missing

import (
	"math/rand"

	"panelmc/domain/panel"
	"panelmc/domain/scenario"
)

// CyclicalInjector is seasonal MAR: a contiguous "high" window covering the
// middle third of the periods carries three times the missingness
// probability of the remaining "low" periods. The probabilities are scaled
// so the expected overall missing fraction matches the target rate:
//
//	p_low  = T·rate / (3·T_high + T_low)
//	p_high = min(3·p_low, 0.95)
type CyclicalInjector struct{}

func (CyclicalInjector) Name() scenario.Mechanism { return scenario.MechanismCyclical }

func (CyclicalInjector) Inject(p *panel.Panel, rate float64, rng *rand.Rand) *panel.Panel {
	if rate <= 0 {
		return p
	}

	out := p.Clone()

	highLen := out.Periods / 3
	if highLen < 1 {
		highLen = 1
	}
	highStart := (out.Periods-highLen)/2 + 1 // periods are 1-based
	highEnd := highStart + highLen - 1

	tHigh := float64(highLen)
	tLow := float64(out.Periods - highLen)

	pLow := float64(out.Periods) * rate / (3*tHigh + tLow)
	pHigh := 3 * pLow
	if pHigh > maxRowProbability {
		pHigh = maxRowProbability
	}
	if pLow > maxRowProbability {
		pLow = maxRowProbability
	}

	for i, row := range out.Rows {
		prob := pLow
		if row.Period >= highStart && row.Period <= highEnd {
			prob = pHigh
		}
		if rng.Float64() < prob {
			out.NullRow(i)
		}
	}
	return out
}
