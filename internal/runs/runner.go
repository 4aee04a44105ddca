package runs

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/pipeline"
)

// Runner executes pipeline runs sequentially, retrying a failed stage a
// bounded number of times with a fixed delay before failing the run. It
// provides no mutual exclusion between overlapping runs; callers that need
// that serialize RunOnce themselves.
type Runner struct {
	Pipeline   *pipeline.Pipeline
	Registry   *Registry
	MaxRetries int
	RetryDelay time.Duration
}

// RunOnce executes one full pipeline run dated today and records it in the
// registry.
func (r *Runner) RunOnce(ctx context.Context) (*Run, error) {
	state := pipeline.NewRunState(civil.DateOf(time.Now()))
	log := logger.FromContext(ctx).With().Str("run_id", state.RunID).Logger()
	ctx = logger.WithContext(ctx, log)

	r.Registry.Start(state.RunID)
	log.Info().Str("date", state.Today.String()).Msg("Starting pipeline run")

	for _, stage := range r.Pipeline.Stages() {
		if err := r.executeStage(ctx, stage, state); err != nil {
			r.Registry.Finish(state.RunID, state, err)
			log.Error().Err(err).Str("stage", stage.Name()).Msg("Pipeline run failed")
			return r.Registry.Get(state.RunID), fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}

	r.Registry.Finish(state.RunID, state, nil)
	log.Info().Msg("Pipeline run succeeded")
	return r.Registry.Get(state.RunID), nil
}

func (r *Runner) executeStage(ctx context.Context, stage pipeline.Stage, state *pipeline.RunState) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warn().
				Str("stage", stage.Name()).
				Int("attempt", attempt+1).
				Err(lastErr).
				Msg("Retrying stage")
			select {
			case <-time.After(r.RetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = stage.Execute(ctx, state)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}
