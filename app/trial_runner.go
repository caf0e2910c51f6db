package app

import (
	"math/rand"

	"panelmc/adapters/missing"
	"panelmc/adapters/synth"
	"panelmc/domain/scenario"
	"panelmc/domain/trial"
	"panelmc/ports"
)

// TrialRunner executes a single replication: generate a complete panel,
// inject missingness, filter viable units, fit both models, run the Hausman
// test, and classify the outcome. Every failure is converted into a labeled
// record at this boundary; a trial always returns a record and never aborts
// the sweep.
type TrialRunner struct {
	generator *synth.Generator
	modeler   ports.PanelModeler
	alpha     float64
}

// NewTrialRunner creates a trial runner. alpha is the significance threshold
// used for the derived specificity indicator.
func NewTrialRunner(generator *synth.Generator, modeler ports.PanelModeler, alpha float64) *TrialRunner {
	return &TrialRunner{generator: generator, modeler: modeler, alpha: alpha}
}

// Run executes one trial for the scenario using the given random stream.
// Each trial is attempted exactly once, with no retry.
func (tr *TrialRunner) Run(s scenario.Scenario, rep int, rng *rand.Rand) (rec trial.Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = trial.Failure(s, rep, trial.OutcomeSystemError, trial.ReasonSystemError)
		}
	}()

	p := tr.generator.Generate(synth.Config{
		Units:      s.Shape.Units,
		Periods:    s.Shape.Periods,
		Covariates: s.Complexity.Covariates,
	}, rng)

	if s.DropoutRate > 0 {
		injector, err := missing.For(s.Mechanism)
		if err != nil {
			return trial.Failure(s, rep, trial.OutcomeSystemError, trial.ReasonSystemError)
		}
		p = injector.Inject(p, s.DropoutRate, rng)
	}

	k := s.Complexity.Covariates

	// Viability filter: a unit identifies k within-coefficients only with
	// more than max(1, k) observed outcomes.
	minObserved := k
	if minObserved < 1 {
		minObserved = 1
	}
	keep := make(map[int]bool)
	for unit, count := range p.ObservedOutcomeCounts() {
		if count > minObserved {
			keep[unit] = true
		}
	}
	if len(keep) < 2 {
		return trial.Failure(s, rep, trial.OutcomeDataFailure, trial.ReasonDataFailure)
	}

	rows := p.CompleteRows(keep)

	fe, err := tr.modeler.FitFixedEffects(rows, k)
	if err != nil {
		return trial.Failure(s, rep, trial.OutcomeModelFailureFE, trial.ReasonModelFailureFE)
	}

	re, err := tr.modeler.FitRandomEffects(rows, k)
	if err != nil {
		return trial.Failure(s, rep, trial.OutcomeModelFailureRE, trial.ReasonModelFailureRE)
	}

	pValue, err := tr.modeler.HausmanTest(fe, re)
	if err != nil {
		return trial.Failure(s, rep, trial.OutcomeHausmanFailure, trial.ReasonHausmanFailure)
	}

	return trial.Success(s, rep, pValue, tr.alpha)
}
