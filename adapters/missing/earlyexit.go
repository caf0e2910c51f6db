package missing

import (
	"math"
	"math/rand"

	"panelmc/domain/panel"
	"panelmc/domain/scenario"
)

// EarlyExitInjector models absorbing dropout: round(2·N·rate) units are
// chosen without replacement, each draws an exit period uniformly from
// {2..T}, and every period at or after the exit is nulled. Once a unit goes
// missing it never comes back (right censoring).
type EarlyExitInjector struct{}

func (EarlyExitInjector) Name() scenario.Mechanism { return scenario.MechanismEarlyExit }

func (EarlyExitInjector) Inject(p *panel.Panel, rate float64, rng *rand.Rand) *panel.Panel {
	if rate <= 0 || p.Periods < 2 {
		return p
	}

	out := p.Clone()

	dropCount := int(math.Round(2 * float64(out.Units) * rate))
	if dropCount < 1 {
		dropCount = 1
	}
	// round(2Nδ) exceeds N for δ>0.5; sampling without replacement caps
	// at the unit count.
	if dropCount > out.Units {
		dropCount = out.Units
	}

	exitByUnit := make(map[int]int, dropCount)
	for _, u := range rng.Perm(out.Units)[:dropCount] {
		unit := u + 1 // unit ids are 1-based
		exitByUnit[unit] = 2 + rng.Intn(out.Periods-1)
	}

	for i, row := range out.Rows {
		if exit, ok := exitByUnit[row.Unit]; ok && row.Period >= exit {
			out.NullRow(i)
		}
	}
	return out
}
