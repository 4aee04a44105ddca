package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/rakshithn/ecommerce-pipeline/internal/catalog"
	"github.com/rakshithn/ecommerce-pipeline/internal/pipeline"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

func testCatalog() []catalog.Item {
	return []catalog.Item{
		{Title: "Backpack", Price: 109.95, Category: "men's clothing", Description: "Fits laptops"},
		{Title: "Gold Ring", Price: 168.00, Category: "jewelery"},
		{Title: "SSD Drive", Price: 64.99, Category: "electronics", Description: "1TB"},
	}
}

func newState() *pipeline.RunState {
	return pipeline.NewRunState(civil.Date{Year: 2026, Month: 8, Day: 31})
}

// Running the sync twice with an unchanged catalog inserts everything once,
// then only updates.
func TestProductSyncIdempotence(t *testing.T) {
	products := newFakeProductStore()
	stage := &pipeline.ProductSyncStage{
		Source: &MockCatalogSource{
			FetchProductsFunc: func(ctx context.Context) ([]catalog.Item, error) {
				return testCatalog(), nil
			},
		},
		Products: products,
	}

	first := newState()
	if err := stage.Execute(context.Background(), first); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if first.ProductSync.Inserted != 3 || first.ProductSync.Updated != 0 {
		t.Errorf("first run = %+v, want 3 inserted, 0 updated", first.ProductSync)
	}

	second := newState()
	if err := stage.Execute(context.Background(), second); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if second.ProductSync.Inserted != 0 || second.ProductSync.Updated != 3 {
		t.Errorf("second run = %+v, want 0 inserted, 3 updated", second.ProductSync)
	}
	if len(products.rows) != 3 {
		t.Errorf("row count after second run = %d, want 3", len(products.rows))
	}
}

func TestProductSyncMapsAndTruncates(t *testing.T) {
	var got []store.ProductUpsert
	stage := &pipeline.ProductSyncStage{
		Source: &MockCatalogSource{
			FetchProductsFunc: func(ctx context.Context) ([]catalog.Item, error) {
				return []catalog.Item{
					{Title: "Lava Lamp", Price: 25.5, Category: "home decor"},
				}, nil
			},
		},
		Products: &MockProductStore{
			UpsertProductsFunc: func(ctx context.Context, products []store.ProductUpsert) (int, int, error) {
				got = products
				return len(products), 0, nil
			},
		},
	}

	if err := stage.Execute(context.Background(), newState()); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d upserts, want 1", len(got))
	}
	if got[0].Category != catalog.CategoryOther {
		t.Errorf("unmapped category = %q, want %q", got[0].Category, catalog.CategoryOther)
	}
}

func TestProductSyncTransportFailureIsHard(t *testing.T) {
	upsertCalled := false
	stage := &pipeline.ProductSyncStage{
		Source: &MockCatalogSource{
			FetchProductsFunc: func(ctx context.Context) ([]catalog.Item, error) {
				return nil, errors.New("connection refused")
			},
		},
		Products: &MockProductStore{
			UpsertProductsFunc: func(ctx context.Context, products []store.ProductUpsert) (int, int, error) {
				upsertCalled = true
				return 0, 0, nil
			},
		},
	}

	state := newState()
	if err := stage.Execute(context.Background(), state); err == nil {
		t.Fatal("expected hard failure on transport error, got nil")
	}
	if upsertCalled {
		t.Error("upsert must not run after a failed fetch")
	}
	if state.ProductSync != nil {
		t.Error("no result should be recorded on failure")
	}
}

func TestProductSyncStorageFailureIsHard(t *testing.T) {
	stage := &pipeline.ProductSyncStage{
		Source: &MockCatalogSource{
			FetchProductsFunc: func(ctx context.Context) ([]catalog.Item, error) {
				return testCatalog(), nil
			},
		},
		Products: &MockProductStore{
			UpsertProductsFunc: func(ctx context.Context, products []store.ProductUpsert) (int, int, error) {
				return 0, 0, errors.New("constraint violation")
			},
		},
	}

	if err := stage.Execute(context.Background(), newState()); err == nil {
		t.Fatal("expected hard failure on storage error, got nil")
	}
}
