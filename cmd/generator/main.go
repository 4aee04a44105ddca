package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rakshithn/ecommerce-pipeline/internal/config"
	"github.com/rakshithn/ecommerce-pipeline/internal/generator"
	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

func main() {
	log := logger.New()

	interval := flag.Duration("interval", 5*time.Second, "Time between generated sales")
	flag.Parse()

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

	gen := &generator.Generator{
		Sink:     st,
		Rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		Interval: *interval,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down generator...")
		cancel()
	}()

	if err := gen.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Generator stopped with error")
	}
}
