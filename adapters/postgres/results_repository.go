// Package postgres persists finished sweep results. It is an optional sink:
// the harness runs entirely in memory and only writes here once a sweep has
// completed.
package postgres

import (
	"context"

	"panelmc/domain/core"
	"panelmc/domain/results"
	"panelmc/internal/errors"
	"panelmc/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ResultsRepository stores trial records and excluded scenarios keyed by run
type ResultsRepository struct {
	db *sqlx.DB
}

// NewResultsRepository creates a new results repository
func NewResultsRepository(db *sqlx.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

// Connect opens a Postgres connection for the repository.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to results database", err)
	}
	return db, nil
}

var _ ports.ResultsLedger = (*ResultsRepository)(nil)

// StoreResults writes the full results table and the infeasible-scenario
// table in one transaction. Failed trials are stored with a NULL p-value and
// their reason string so downstream failure-rate queries stay unbiased.
func (r *ResultsRepository) StoreResults(ctx context.Context, runID core.RunID, table *results.Table) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin results transaction", err)
	}
	defer tx.Rollback()

	insertRecord := `
		INSERT INTO trial_records (
			run_id, shape_name, units, periods, complexity_name, covariates,
			mechanism, dropout_rate, replication, outcome, reason, p_value, specificity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, rec := range table.Records {
		s := rec.Scenario
		_, err = tx.ExecContext(ctx, insertRecord,
			runID.String(),
			s.Shape.Name,
			s.Shape.Units,
			s.Shape.Periods,
			s.Complexity.Name,
			s.Complexity.Covariates,
			string(s.Mechanism),
			s.DropoutRate,
			rec.Replication,
			string(rec.Outcome),
			rec.Reason,
			rec.PValue,
			rec.Specificity,
		)
		if err != nil {
			return errors.DatabaseError("failed to insert trial record", err)
		}
	}

	insertExcluded := `
		INSERT INTO excluded_scenarios (
			run_id, shape_name, units, periods, complexity_name, covariates,
			mechanism, dropout_rate, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, ex := range table.Excluded {
		s := ex.Scenario
		_, err = tx.ExecContext(ctx, insertExcluded,
			runID.String(),
			s.Shape.Name,
			s.Shape.Units,
			s.Shape.Periods,
			s.Complexity.Name,
			s.Complexity.Covariates,
			string(s.Mechanism),
			s.DropoutRate,
			ex.Reason,
		)
		if err != nil {
			return errors.DatabaseError("failed to insert excluded scenario", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit results", err)
	}
	return nil
}
