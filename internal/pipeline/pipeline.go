// Package pipeline implements the four-stage sales analytics run:
// product sync, transaction synthesis, quality gate, run summary. Stages
// execute strictly in order; each stage commits its own work before the
// next starts.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Stage is a single invocable unit of the pipeline. It reads and writes
// the shared run state and either completes or raises a stage-level error
// for the orchestrator to retry.
type Stage interface {
	Name() string
	Execute(ctx context.Context, state *RunState) error
}

// Pipeline executes a sequence of stages in order, stopping at the first
// stage error.
type Pipeline struct {
	stages []Stage
}

// New creates a pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Stages returns the configured stages in execution order.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Execute runs all stages sequentially against the shared state.
func (p *Pipeline) Execute(ctx context.Context, state *RunState) error {
	for _, stage := range p.stages {
		if err := stage.Execute(ctx, state); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}
	return nil
}

// NewRunState creates the state for one pipeline run dated today.
func NewRunState(today civil.Date) *RunState {
	return &RunState{
		RunID: uuid.NewString(),
		Today: today,
	}
}

// Config carries the synthesizer's tunable bounds.
type Config struct {
	BatchMin int
	BatchMax int
}

// NewSalesPipeline assembles the standard four-stage pipeline.
func NewSalesPipeline(source CatalogSource, products ProductStore, dims DimensionSampler, sales SalesWriter, quality QualityReader, cfg Config, rng *rand.Rand) *Pipeline {
	return New(
		&ProductSyncStage{Source: source, Products: products},
		&SynthesizeStage{Dims: dims, Sales: sales, Rng: rng, BatchMin: cfg.BatchMin, BatchMax: cfg.BatchMax},
		&QualityGateStage{Quality: quality},
		&RunSummaryStage{},
	)
}
