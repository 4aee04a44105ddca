package runs

import "time"

// Status is the lifecycle state of one pipeline run.
type Status string

const (
	// StatusRunning indicates the run is currently executing.
	StatusRunning Status = "running"
	// StatusSucceeded indicates all stages completed.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates a stage exhausted its retries.
	StatusFailed Status = "failed"
)

// Run records one pipeline run for the registry.
type Run struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`

	ProductsInserted   int      `json:"products_inserted"`
	ProductsUpdated    int      `json:"products_updated"`
	TransactionsLoaded int      `json:"transactions_loaded"`
	Violations         []string `json:"violations,omitempty"`
}
