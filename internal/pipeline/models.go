package pipeline

import "cloud.google.com/go/civil"

// ProductSyncResult counts how the catalog reconciliation touched the
// product dimension. No rows are ever deleted.
type ProductSyncResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// LoadResult is the transaction synthesizer's outcome. Zero on either
// soft-skip path, the batch size on success.
type LoadResult struct {
	TransactionsLoaded int `json:"transactions_loaded"`
}

// QualityResult lists every violated invariant after a gate run. Empty
// means the gate passed.
type QualityResult struct {
	Violations []string `json:"violations"`
}

// RunState is the shared state threaded through the pipeline stages.
type RunState struct {
	RunID string
	Today civil.Date

	ProductSync *ProductSyncResult
	Load        *LoadResult
	Quality     *QualityResult
}
