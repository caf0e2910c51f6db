package app

import (
	"context"
	"sync"
	"time"

	"panelmc/domain/core"
	"panelmc/domain/results"
	"panelmc/domain/scenario"
	"panelmc/domain/trial"
	"panelmc/internal"
	"panelmc/ports"

	"golang.org/x/sync/semaphore"
)

// SweepService drives the full experiment: it partitions the scenario grid
// into feasible and excluded cells, runs the configured number of
// replications per feasible scenario on a bounded worker pool, and
// concatenates all trial records into the results table.
type SweepService struct {
	runner       *TrialRunner
	rngPort      ports.RNGPort
	logger       *internal.Logger
	replications int
	workers      int64
}

// SweepResult is the complete output of one sweep run.
type SweepResult struct {
	RunID     core.RunID     `json:"run_id"`
	Table     *results.Table `json:"table"`
	Feasible  int            `json:"feasible_scenarios"`
	Excluded  int            `json:"excluded_scenarios"`
	RuntimeMs int64          `json:"runtime_ms"`
}

// NewSweepService creates a sweep controller. workers bounds the number of
// concurrently executing trials; the unit of parallelism is one full trial.
func NewSweepService(runner *TrialRunner, rngPort ports.RNGPort, logger *internal.Logger, replications int, workers int) *SweepService {
	if replications < 1 {
		replications = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &SweepService{
		runner:       runner,
		rngPort:      rngPort,
		logger:       logger,
		replications: replications,
		workers:      int64(workers),
	}
}

// RunSweep executes every feasible scenario in the grid. Infeasible
// scenarios are recorded with their exclusion reason and run zero trials.
// Record order in the table is fixed by (scenario index, replication index)
// regardless of scheduling, and each trial draws from a stream derived from
// those same indices, so the sweep reproduces exactly for a given master
// seed.
func (s *SweepService) RunSweep(ctx context.Context, grid []scenario.Scenario) (*SweepResult, error) {
	start := time.Now()

	feasible, excluded := scenario.Partition(grid)
	s.logger.Info("sweep started: %d scenarios (%d feasible, %d excluded), %d replications each",
		len(grid), len(feasible), len(excluded), s.replications)

	records := make([]trial.Record, len(feasible)*s.replications)
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for si := range feasible {
		for rep := 0; rep < s.replications; rep++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Context cancelled mid-dispatch; wait for in-flight trials.
				wg.Wait()
				return nil, err
			}
			wg.Add(1)
			go func(si, rep int) {
				defer wg.Done()
				defer sem.Release(1)
				rng := s.rngPort.TrialStream(si, rep)
				records[si*s.replications+rep] = s.runner.Run(feasible[si], rep, rng)
			}(si, rep)
		}
	}
	wg.Wait()

	table := &results.Table{Records: records, Excluded: excluded}

	result := &SweepResult{
		RunID:     core.RunID(core.NewID()),
		Table:     table,
		Feasible:  len(feasible),
		Excluded:  len(excluded),
		RuntimeMs: time.Since(start).Milliseconds(),
	}

	s.logger.Info("sweep %s finished: %d trial records in %dms",
		result.RunID, table.Len(), result.RuntimeMs)
	return result, nil
}
