package pipeline

import (
	"context"

	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
)

// RunSummaryStage renders the fixed-format run report from the upstream
// stage results. Missing upstream results default to zero; this stage never
// fails the pipeline.
type RunSummaryStage struct{}

func (s *RunSummaryStage) Name() string { return "run_summary" }

func (s *RunSummaryStage) Execute(ctx context.Context, state *RunState) error {
	var (
		inserted, updated int
		loaded            int
	)
	if state.ProductSync != nil {
		inserted = state.ProductSync.Inserted
		updated = state.ProductSync.Updated
	}
	if state.Load != nil {
		loaded = state.Load.TransactionsLoaded
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("run_id", state.RunID).
		Str("date", state.Today.String()).
		Int("products_inserted", inserted).
		Int("products_updated", updated).
		Int("transactions_loaded", loaded).
		Msg("Pipeline summary")
	return nil
}
