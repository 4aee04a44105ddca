package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rakshithn/ecommerce-pipeline/internal/config"
	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

func main() {
	log := logger.New()

	var (
		customers = flag.Int("customers", 1000, "Number of customers to seed")
		locations = flag.Int("locations", 100, "Number of locations to seed")
		products  = flag.Int("products", 200, "Number of synthetic products to seed")
		startDate = flag.String("start-date", "2024-01-01", "First date of the date dimension (YYYY-MM-DD)")
		endDate   = flag.String("end-date", "", "Last date of the date dimension (defaults to today)")
		seed      = flag.Int64("seed", 0, "Random seed (0 = time-based)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	from, err := civil.ParseDate(*startDate)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -start-date")
	}
	to := civil.DateOf(time.Now())
	if *endDate != "" {
		to, err = civil.ParseDate(*endDate)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -end-date")
		}
	}
	if to.Before(from) {
		log.Fatal().Str("start", from.String()).Str("end", to.String()).Msg("Date range is inverted")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
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
	today := civil.DateOf(time.Now())

	log.Info().
		Int("customers", *customers).
		Int("locations", *locations).
		Int("products", *products).
		Str("date_range", fmt.Sprintf("[%s, %s]", from, to)).
		Msg("Seeding dimensions")

	n, err := st.SeedCustomers(ctx, generateCustomers(rng, *customers, today))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed customers")
	}
	log.Info().Int("inserted", n).Msg("Customers seeded")

	n, err = st.SeedLocations(ctx, generateLocations(rng, *locations))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed locations")
	}
	log.Info().Int("inserted", n).Msg("Locations seeded")

	n, err = st.SeedProducts(ctx, generateProducts(rng, *products))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed products")
	}
	log.Info().Int("inserted", n).Msg("Products seeded")

	n, err = st.SeedDateRange(ctx, from, to)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed date dimension")
	}
	log.Info().Int("inserted", n).Msg("Date dimension seeded")

	fmt.Println("Seeding completed successfully.")
}
