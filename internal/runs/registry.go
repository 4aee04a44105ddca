package runs

import (
	"sort"
	"sync"
	"time"

	"github.com/rakshithn/ecommerce-pipeline/internal/pipeline"
)

// Registry is an in-memory record of pipeline runs. It is safe for
// concurrent use. State is lost on restart; run history that must survive
// the process belongs in the warehouse, not here.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRegistry creates an empty run registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]*Run)}
}

// Start records a new run in the running state.
func (r *Registry) Start(runID string) *Run {
	r.mu.Lock()
	defer r.mu.Unlock()

	run := &Run{
		RunID:     runID,
		StartedAt: time.Now(),
		Status:    StatusRunning,
	}
	r.runs[runID] = run
	return copyRun(run)
}

// Finish marks a run complete, copying the stage results out of the run
// state. A nil runErr means success.
func (r *Registry) Finish(runID string, state *pipeline.RunState, runErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return
	}

	now := time.Now()
	run.FinishedAt = &now
	if runErr != nil {
		run.Status = StatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = StatusSucceeded
	}

	if state.ProductSync != nil {
		run.ProductsInserted = state.ProductSync.Inserted
		run.ProductsUpdated = state.ProductSync.Updated
	}
	if state.Load != nil {
		run.TransactionsLoaded = state.Load.TransactionsLoaded
	}
	if state.Quality != nil {
		run.Violations = append([]string(nil), state.Quality.Violations...)
	}
}

// Get returns a copy of one run, or nil if unknown.
func (r *Registry) Get(runID string) *Run {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[runID]
	if !ok {
		return nil
	}
	return copyRun(run)
}

// List returns copies of all runs, most recent first.
func (r *Registry) List() []*Run {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		list = append(list, copyRun(run))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].StartedAt.After(list[j].StartedAt)
	})
	return list
}

func copyRun(run *Run) *Run {
	out := *run
	if run.FinishedAt != nil {
		finished := *run.FinishedAt
		out.FinishedAt = &finished
	}
	out.Violations = append([]string(nil), run.Violations...)
	return &out
}
