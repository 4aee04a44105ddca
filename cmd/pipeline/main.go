package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rakshithn/ecommerce-pipeline/internal/catalog"
	"github.com/rakshithn/ecommerce-pipeline/internal/config"
	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/pipeline"
	"github.com/rakshithn/ecommerce-pipeline/internal/runs"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

func main() {
	log := logger.New()

	seed := flag.Int64("seed", 0, "Random seed for the synthesizer (0 = time-based)")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to warehouse")
	}
	defer st.Close()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	source := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)
	pipe := pipeline.NewSalesPipeline(source, st, st, st, st, pipeline.Config{
		BatchMin: cfg.BatchMin,
		BatchMax: cfg.BatchMax,
	}, rng)

	runner := &runs.Runner{
		Pipeline:   pipe,
		Registry:   runs.NewRegistry(),
		MaxRetries: cfg.MaxStageRetries,
		RetryDelay: cfg.RetryDelay,
	}

	run, err := runner.RunOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Pipeline run failed")
		os.Exit(1)
	}

	fmt.Printf("Run %s completed: %d products inserted, %d updated, %d transactions loaded.\n",
		run.RunID, run.ProductsInserted, run.ProductsUpdated, run.TransactionsLoaded)
}
