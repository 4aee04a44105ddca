package pipeline_test

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/rakshithn/ecommerce-pipeline/internal/catalog"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

// MockCatalogSource is a mock implementation of CatalogSource for testing.
type MockCatalogSource struct {
	FetchProductsFunc func(ctx context.Context) ([]catalog.Item, error)
}

func (m *MockCatalogSource) FetchProducts(ctx context.Context) ([]catalog.Item, error) {
	if m.FetchProductsFunc != nil {
		return m.FetchProductsFunc(ctx)
	}
	return nil, nil
}

// MockProductStore is a mock implementation of ProductStore for testing.
type MockProductStore struct {
	UpsertProductsFunc func(ctx context.Context, products []store.ProductUpsert) (int, int, error)
}

func (m *MockProductStore) UpsertProducts(ctx context.Context, products []store.ProductUpsert) (int, int, error) {
	if m.UpsertProductsFunc != nil {
		return m.UpsertProductsFunc(ctx, products)
	}
	return 0, 0, nil
}

// MockDimensionSampler is a mock implementation of DimensionSampler for testing.
type MockDimensionSampler struct {
	EnsureDateFunc        func(ctx context.Context, d civil.Date) (int64, error)
	SampleCustomerIDsFunc func(ctx context.Context, limit int) ([]int64, error)
	SampleProductsFunc    func(ctx context.Context, limit int) ([]store.ProductSample, error)
	SampleLocationIDsFunc func(ctx context.Context, limit int) ([]int64, error)
}

func (m *MockDimensionSampler) EnsureDate(ctx context.Context, d civil.Date) (int64, error) {
	if m.EnsureDateFunc != nil {
		return m.EnsureDateFunc(ctx, d)
	}
	return 1, nil
}

func (m *MockDimensionSampler) SampleCustomerIDs(ctx context.Context, limit int) ([]int64, error) {
	if m.SampleCustomerIDsFunc != nil {
		return m.SampleCustomerIDsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockDimensionSampler) SampleProducts(ctx context.Context, limit int) ([]store.ProductSample, error) {
	if m.SampleProductsFunc != nil {
		return m.SampleProductsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockDimensionSampler) SampleLocationIDs(ctx context.Context, limit int) ([]int64, error) {
	if m.SampleLocationIDsFunc != nil {
		return m.SampleLocationIDsFunc(ctx, limit)
	}
	return nil, nil
}

// MockSalesWriter is a mock implementation of SalesWriter for testing.
type MockSalesWriter struct {
	InsertSalesFunc func(ctx context.Context, sales []store.SaleRow) error

	// Inserted records every batch passed to InsertSales.
	Inserted [][]store.SaleRow
}

func (m *MockSalesWriter) InsertSales(ctx context.Context, sales []store.SaleRow) error {
	m.Inserted = append(m.Inserted, sales)
	if m.InsertSalesFunc != nil {
		return m.InsertSalesFunc(ctx, sales)
	}
	return nil
}

// MockQualityReader is a mock implementation of QualityReader for testing.
type MockQualityReader struct {
	NullCustomers  int64
	NegativeTotals int64
	Orphans        int64
	TodaySales     int64

	Err error
}

func (m *MockQualityReader) CountNullCustomerSales(ctx context.Context) (int64, error) {
	return m.NullCustomers, m.Err
}

func (m *MockQualityReader) CountNegativeTotalSales(ctx context.Context) (int64, error) {
	return m.NegativeTotals, m.Err
}

func (m *MockQualityReader) CountOrphanedCustomerSales(ctx context.Context) (int64, error) {
	return m.Orphans, m.Err
}

func (m *MockQualityReader) CountSalesOn(ctx context.Context, d civil.Date) (int64, error) {
	return m.TodaySales, m.Err
}

// fakeProductStore implements upsert-by-name semantics in memory so sync
// runs can be repeated against the same state.
type fakeProductStore struct {
	rows map[string]store.ProductUpsert
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{rows: make(map[string]store.ProductUpsert)}
}

func (f *fakeProductStore) UpsertProducts(ctx context.Context, products []store.ProductUpsert) (int, int, error) {
	var inserted, updated int
	for _, p := range products {
		if _, ok := f.rows[p.Name]; ok {
			existing := f.rows[p.Name]
			existing.UnitPrice = p.UnitPrice
			existing.Category = p.Category
			f.rows[p.Name] = existing
			updated++
		} else {
			f.rows[p.Name] = p
			inserted++
		}
	}
	return inserted, updated, nil
}
