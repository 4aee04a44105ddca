package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
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

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to warehouse")
	}
	defer st.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
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

	log.Info().Dur("interval", cfg.RunInterval).Msg("Starting worker service")

	// Run once immediately, then on every tick.
	go func() {
		if _, err := runner.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("Initial run failed")
		}

		ticker := time.NewTicker(cfg.RunInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := runner.RunOnce(ctx); err != nil {
					log.Error().Err(err).Msg("Scheduled run failed")
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")
	cancel()
	log.Info().Msg("Worker service exited")
}
