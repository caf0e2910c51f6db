// Package missing implements the four interchangeable missingness-injection
// strategies. Each strategy takes a complete panel and a dropout fraction and
// returns a panel with selected outcome/covariate cells nulled. Shape is
// always preserved: rows are never removed and the unit/period columns are
// never touched.
package missing

import (
	"fmt"
	"math/rand"

	"panelmc/domain/panel"
	"panelmc/domain/scenario"
)

// Probabilities of the stochastic mechanisms are clamped here so no row is
// missing with certainty.
const maxRowProbability = 0.95

// Injector is one missingness mechanism. Inject never mutates its input:
// with rate 0 the input panel is returned unchanged, otherwise a modified
// copy is returned.
type Injector interface {
	Name() scenario.Mechanism
	Inject(p *panel.Panel, rate float64, rng *rand.Rand) *panel.Panel
}

// For resolves a mechanism name to its injector.
func For(m scenario.Mechanism) (Injector, error) {
	switch m {
	case scenario.MechanismRandom:
		return RandomInjector{}, nil
	case scenario.MechanismEarlyExit:
		return EarlyExitInjector{}, nil
	case scenario.MechanismLateMissing:
		return LateMissingInjector{}, nil
	case scenario.MechanismCyclical:
		return CyclicalInjector{}, nil
	default:
		return nil, fmt.Errorf("unknown missingness mechanism %q", m)
	}
}

// All returns every registered injector.
func All() []Injector {
	return []Injector{RandomInjector{}, EarlyExitInjector{}, LateMissingInjector{}, CyclicalInjector{}}
}
