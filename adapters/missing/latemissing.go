package missing

import (
	"math/rand"

	"panelmc/domain/panel"
	"panelmc/domain/scenario"
)

// LateMissingInjector is time-increasing MAR: the per-row missingness
// probability grows linearly with the period, p(t) = min(c·t, 0.95) with
// c = 2·rate/(T+1). The linear ramp averages out to roughly the target
// dropout fraction over the panel.
type LateMissingInjector struct{}

func (LateMissingInjector) Name() scenario.Mechanism { return scenario.MechanismLateMissing }

func (LateMissingInjector) Inject(p *panel.Panel, rate float64, rng *rand.Rand) *panel.Panel {
	if rate <= 0 {
		return p
	}

	out := p.Clone()
	c := 2 * rate / float64(out.Periods+1)

	for i, row := range out.Rows {
		prob := c * float64(row.Period)
		if prob > maxRowProbability {
			prob = maxRowProbability
		}
		if rng.Float64() < prob {
			out.NullRow(i)
		}
	}
	return out
}
