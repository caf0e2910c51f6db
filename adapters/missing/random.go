package missing

import (
	"math"
	"math/rand"

	"panelmc/domain/panel"
	"panelmc/domain/scenario"
)

// RandomInjector is the MCAR mechanism: round(rate × total rows) rows are
// chosen uniformly without replacement from the whole panel and nulled.
type RandomInjector struct{}

func (RandomInjector) Name() scenario.Mechanism { return scenario.MechanismRandom }

func (RandomInjector) Inject(p *panel.Panel, rate float64, rng *rand.Rand) *panel.Panel {
	if rate <= 0 {
		return p
	}

	out := p.Clone()
	target := int(math.Round(rate * float64(len(out.Rows))))
	if target > len(out.Rows) {
		target = len(out.Rows)
	}

	for _, i := range rng.Perm(len(out.Rows))[:target] {
		out.NullRow(i)
	}
	return out
}
