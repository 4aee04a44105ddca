package pipeline

import (
	"context"
	"fmt"

	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

// ProductSyncStage reconciles the remote catalog against the product
// dimension. Any transport failure or storage error is a hard failure with
// no partial commit.
type ProductSyncStage struct {
	Source   CatalogSource
	Products ProductStore
}

func (s *ProductSyncStage) Name() string { return "product_sync" }

func (s *ProductSyncStage) Execute(ctx context.Context, state *RunState) error {
	log := logger.FromContext(ctx)

	items, err := s.Source.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("fetching catalog: %w", err)
	}

	upserts := make([]store.ProductUpsert, 0, len(items))
	for _, item := range items {
		p := item.Normalize()
		upserts = append(upserts, store.ProductUpsert{
			Name:        p.Name,
			Category:    p.Category,
			UnitPrice:   p.UnitPrice,
			Description: p.Description,
		})
	}

	inserted, updated, err := s.Products.UpsertProducts(ctx, upserts)
	if err != nil {
		return fmt.Errorf("upserting products: %w", err)
	}

	state.ProductSync = &ProductSyncResult{Inserted: inserted, Updated: updated}
	log.Info().
		Int("inserted", inserted).
		Int("updated", updated).
		Msg("Product sync complete")
	return nil
}
