package ports

import (
	"context"

	"panelmc/domain/core"
	"panelmc/domain/results"
)

// ResultsLedger persists the finished results of a sweep. It is a write-once
// sink: partial runs are never stored or resumed.
type ResultsLedger interface {
	StoreResults(ctx context.Context, runID core.RunID, table *results.Table) error
}
