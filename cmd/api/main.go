package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rakshithn/ecommerce-pipeline/internal/api/handlers"
	"github.com/rakshithn/ecommerce-pipeline/internal/api/middleware"
	"github.com/rakshithn/ecommerce-pipeline/internal/catalog"
	"github.com/rakshithn/ecommerce-pipeline/internal/config"
	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/pipeline"
	"github.com/rakshithn/ecommerce-pipeline/internal/runs"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

func main() {
	var (
		port       = flag.String("port", "8080", "HTTP server port")
		manualRuns = flag.Bool("manual-runs", true, "Allow triggering pipeline runs via POST /api/runs")
	)
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to warehouse")
	}
	defer st.Close()

	registry := runs.NewRegistry()

	var trigger handlers.RunTrigger
	if *manualRuns {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		source := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)
		pipe := pipeline.NewSalesPipeline(source, st, st, st, st, pipeline.Config{
			BatchMin: cfg.BatchMin,
			BatchMax: cfg.BatchMax,
		}, rng)
		trigger = &runs.Runner{
			Pipeline:   pipe,
			Registry:   registry,
			MaxRetries: cfg.MaxStageRetries,
			RetryDelay: cfg.RetryDelay,
		}
	}

	reportsHandler := handlers.NewReportsHandler(st, log)
	runsHandler := handlers.NewRunsHandler(registry, trigger, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/reports/kpis", getOnly(reportsHandler.GetKPIs))
	mux.HandleFunc("/api/reports/trend", getOnly(reportsHandler.GetTrend))
	mux.HandleFunc("/api/reports/categories", getOnly(reportsHandler.GetRevenueByCategory))
	mux.HandleFunc("/api/reports/regions", getOnly(reportsHandler.GetRevenueByRegion))
	mux.HandleFunc("/api/reports/segments", getOnly(reportsHandler.GetSegments))
	mux.HandleFunc("/api/reports/products", getOnly(reportsHandler.GetTopProducts))
	mux.HandleFunc("/api/regions", getOnly(reportsHandler.ListRegions))

	mux.HandleFunc("/api/runs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			runsHandler.ListRuns(w, r)
		case http.MethodPost:
			runsHandler.TriggerRun(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/runs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		runID := strings.TrimPrefix(r.URL.Path, "/api/runs/")
		if runID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Run ID is required")
			return
		}
		runsHandler.GetRun(w, r, runID)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	log.Info().Msg("API server exited")
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h(w, r)
	}
}
