// Package generator implements the standalone realtime sale feed: a
// long-lived sleep-and-repeat loop that writes one synthesized sale per
// tick against the shared warehouse. It shares no in-process state with
// the pipeline; it is just another writer of fact rows.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

// SaleSink is what the generator needs from the warehouse.
type SaleSink interface {
	EnsureDate(ctx context.Context, d civil.Date) (int64, error)
	SampleCustomerIDs(ctx context.Context, limit int) ([]int64, error)
	SampleProducts(ctx context.Context, limit int) ([]store.ProductSample, error)
	SampleLocationIDs(ctx context.Context, limit int) ([]int64, error)
	InsertSale(ctx context.Context, sale store.SaleRow) (int64, error)
}

var (
	taxRate = decimal.NewFromFloat(0.08)

	// Order statuses are stored lowercase everywhere; the generator's set
	// adds cancelled to the pipeline synthesizer's.
	orderStatuses = []string{"completed", "pending", "cancelled", "refunded"}

	paymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Cash", "Bank Transfer"}
)

// Generator emits one sale per interval until the context is cancelled.
type Generator struct {
	Sink     SaleSink
	Rng      *rand.Rand
	Interval time.Duration
}

// Run loops until ctx is cancelled. A failed tick is logged and skipped;
// the loop keeps going.
func (g *Generator) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info().Dur("interval", g.Interval).Msg("Realtime sales generator started")

	ticker := time.NewTicker(g.Interval)
	defer ticker.Stop()

	var count int
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("total_sales", count).Msg("Generator stopped")
			return ctx.Err()
		case <-ticker.C:
			saleID, total, err := g.GenerateSale(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Sale generation failed")
				continue
			}
			count++
			log.Info().
				Int64("sale_id", saleID).
				Str("total", total.StringFixed(2)).
				Int("session_total", count).
				Msg("Sale generated")
		}
	}
}

// GenerateSale samples one customer, product and location, lazily ensures
// today's date row, and inserts a single sale. Returns the new sale id and
// its total amount.
func (g *Generator) GenerateSale(ctx context.Context) (int64, decimal.Decimal, error) {
	today := civil.DateOf(time.Now())

	dateID, err := g.Sink.EnsureDate(ctx, today)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("GenerateSale: resolving date: %w", err)
	}

	customers, err := g.Sink.SampleCustomerIDs(ctx, 1)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("GenerateSale: sampling customer: %w", err)
	}
	products, err := g.Sink.SampleProducts(ctx, 1)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("GenerateSale: sampling product: %w", err)
	}
	locations, err := g.Sink.SampleLocationIDs(ctx, 1)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("GenerateSale: sampling location: %w", err)
	}
	if len(customers) == 0 || len(products) == 0 || len(locations) == 0 {
		return 0, decimal.Zero, fmt.Errorf("GenerateSale: empty dimension tables")
	}

	product := products[0]
	quantity := 1 + g.Rng.Intn(5)
	discount := decimal.NewFromFloat(g.Rng.Float64() * 0.25).Round(2)

	subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discounted := subtotal.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)
	tax := discounted.Mul(taxRate).Round(2)
	total := discounted.Add(tax)

	sale := store.SaleRow{
		CustomerID:      customers[0],
		ProductID:       product.ProductID,
		LocationID:      locations[0],
		DateID:          dateID,
		Quantity:        quantity,
		UnitPrice:       product.UnitPrice,
		DiscountPercent: discount,
		TaxAmount:       tax,
		TotalAmount:     total,
		OrderStatus:     orderStatuses[g.Rng.Intn(len(orderStatuses))],
		PaymentMethod:   paymentMethods[g.Rng.Intn(len(paymentMethods))],
	}

	saleID, err := g.Sink.InsertSale(ctx, sale)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("GenerateSale: inserting sale: %w", err)
	}
	return saleID, total, nil
}
