package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rakshithn/ecommerce-pipeline/internal/api/middleware"
	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/runs"
)

// RunTrigger starts a single pipeline run.
type RunTrigger interface {
	RunOnce(ctx context.Context) (*runs.Run, error)
}

// RunsHandler handles pipeline run endpoints.
type RunsHandler struct {
	registry *runs.Registry
	trigger  RunTrigger
	log      zerolog.Logger
}

// NewRunsHandler creates a new runs handler. Trigger may be nil, in which
// case POST /api/runs is rejected and runs are only started by the worker.
func NewRunsHandler(registry *runs.Registry, trigger RunTrigger, log zerolog.Logger) *RunsHandler {
	return &RunsHandler{
		registry: registry,
		trigger:  trigger,
		log:      log,
	}
}

// ListRuns handles GET /api/runs
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  list,
		"count": len(list),
	})
}

// GetRun handles GET /api/runs/{id}
func (h *RunsHandler) GetRun(w http.ResponseWriter, r *http.Request, runID string) {
	run := h.registry.Get(runID)
	if run == nil {
		middleware.WriteError(w, http.StatusNotFound, "Run not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, run)
}

// TriggerRun handles POST /api/runs
//
// The run executes synchronously. A failed run still gets a 202 response;
// the failure is reported in the run record.
func (h *RunsHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	if h.trigger == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Manual runs are not enabled")
		return
	}

	// Detach from the request context so closing the connection does not
	// cancel the run mid-flight.
	ctx := logger.WithContext(context.Background(), h.log)

	run, err := h.trigger.RunOnce(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Triggered run failed")
	}
	if run == nil {
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to start run")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"run_id": run.RunID,
		"status": string(run.Status),
	})
}
