// Command sweep runs the full Monte Carlo experiment: the reference scenario
// grid, the configured replications per feasible scenario, and a
// per-mechanism summary on completion. When DATABASE_URL is set the finished
// results table is persisted to the Postgres ledger.
package main

import (
	"context"
	"os"

	"panelmc/adapters/econometrics"
	"panelmc/adapters/postgres"
	"panelmc/adapters/rng"
	"panelmc/adapters/synth"
	"panelmc/app"
	"panelmc/domain/scenario"
	"panelmc/internal"
	"panelmc/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration: %v", err)
		os.Exit(1)
	}

	runner := app.NewTrialRunner(
		synth.NewGenerator(),
		econometrics.NewModeler(),
		cfg.Sweep.SignificanceLevel,
	)
	sweep := app.NewSweepService(
		runner,
		rng.NewDeterministic(cfg.Sweep.MasterSeed),
		logger,
		cfg.Sweep.Replications,
		cfg.Sweep.Workers,
	)

	ctx := context.Background()
	result, err := sweep.RunSweep(ctx, scenario.DefaultGrid())
	if err != nil {
		logger.Error("sweep failed: %v", err)
		os.Exit(1)
	}

	for _, s := range result.Table.SummarizeByMechanism() {
		logger.Info("mechanism %s: %d trials, success_rate=%.3f failure_rate=%.3f mean_p=%.4f specificity=%.3f",
			s.Mechanism, s.Trials, s.SuccessRate, s.FailureRate, s.MeanPValue, s.Specificity)
	}

	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			logger.Error("results ledger: %v", err)
			os.Exit(1)
		}
		defer db.Close()

		ledger := postgres.NewResultsRepository(db)
		if err := ledger.StoreResults(ctx, result.RunID, result.Table); err != nil {
			logger.Error("results ledger: %v", err)
			os.Exit(1)
		}
		logger.Info("stored run %s (%d records, %d excluded scenarios)",
			result.RunID, result.Table.Len(), len(result.Table.Excluded))
	}
}
