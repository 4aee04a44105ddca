package pipeline

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/rakshithn/ecommerce-pipeline/internal/catalog"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

// CatalogSource fetches the remote product catalog.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]catalog.Item, error)
}

// ProductStore reconciles catalog products into the product dimension.
type ProductStore interface {
	UpsertProducts(ctx context.Context, products []store.ProductUpsert) (inserted, updated int, err error)
}

// DimensionSampler resolves the dimension-key pool for a run. An
// implementation that cannot find or create the date row reports it with
// ErrNoDateDim, which the synthesizer treats as a soft skip; implementations
// that insert the row lazily (like the Postgres store) never return it.
// Any other error is a storage failure.
type DimensionSampler interface {
	EnsureDate(ctx context.Context, d civil.Date) (int64, error)
	SampleCustomerIDs(ctx context.Context, limit int) ([]int64, error)
	SampleProducts(ctx context.Context, limit int) ([]store.ProductSample, error)
	SampleLocationIDs(ctx context.Context, limit int) ([]int64, error)
}

// SalesWriter loads a synthesized batch into the fact table atomically.
type SalesWriter interface {
	InsertSales(ctx context.Context, sales []store.SaleRow) error
}

// QualityReader exposes the gate's read-only invariant checks.
type QualityReader interface {
	CountNullCustomerSales(ctx context.Context) (int64, error)
	CountNegativeTotalSales(ctx context.Context) (int64, error)
	CountOrphanedCustomerSales(ctx context.Context) (int64, error)
	CountSalesOn(ctx context.Context, d civil.Date) (int64, error)
}
