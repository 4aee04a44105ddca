package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

// ErrNoDateDim signals that no date-dimension row could be found or created
// for the run date. The synthesizer treats it as "nothing to do", not as a
// failure.
var ErrNoDateDim = errors.New("no date dimension row available")

// Sampling caps for the per-run dimension-key pool.
const (
	maxCustomerSample = 100
	maxProductSample  = 50
	maxLocationSample = 20
)

// taxRate applies to the post-discount subtotal and is added into the
// total. The tax component is tracked separately in tax_amount.
var taxRate = decimal.NewFromFloat(0.08)

var orderStatuses = []string{"completed", "completed", "completed", "pending", "refunded"}

var paymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Cash", "Bank Transfer"}

// SynthesizeStage fabricates a batch of plausible sales transactions from
// sampled dimension keys and loads them atomically. Empty pools and a
// missing date row are soft outcomes with zero transactions; storage errors
// are hard failures.
type SynthesizeStage struct {
	Dims  DimensionSampler
	Sales SalesWriter
	Rng   *rand.Rand

	BatchMin int
	BatchMax int
}

func (s *SynthesizeStage) Name() string { return "synthesize_sales" }

func (s *SynthesizeStage) Execute(ctx context.Context, state *RunState) error {
	log := logger.FromContext(ctx)
	state.Load = &LoadResult{}

	dateID, err := s.Dims.EnsureDate(ctx, state.Today)
	if errors.Is(err, ErrNoDateDim) {
		log.Warn().Str("date", state.Today.String()).Msg("No date dimension row, skipping run")
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolving date %s: %w", state.Today, err)
	}

	customerIDs, err := s.Dims.SampleCustomerIDs(ctx, maxCustomerSample)
	if err != nil {
		return fmt.Errorf("sampling customers: %w", err)
	}
	products, err := s.Dims.SampleProducts(ctx, maxProductSample)
	if err != nil {
		return fmt.Errorf("sampling products: %w", err)
	}
	locationIDs, err := s.Dims.SampleLocationIDs(ctx, maxLocationSample)
	if err != nil {
		return fmt.Errorf("sampling locations: %w", err)
	}

	if len(customerIDs) == 0 || len(products) == 0 || len(locationIDs) == 0 {
		log.Warn().
			Int("customers", len(customerIDs)).
			Int("products", len(products)).
			Int("locations", len(locationIDs)).
			Msg("Not enough dimension data, skipping run")
		return nil
	}

	batchSize := s.BatchMin + s.Rng.Intn(s.BatchMax-s.BatchMin+1)
	sales := make([]store.SaleRow, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		product := products[s.Rng.Intn(len(products))]
		sales = append(sales, s.synthesizeSale(
			customerIDs[s.Rng.Intn(len(customerIDs))],
			locationIDs[s.Rng.Intn(len(locationIDs))],
			dateID,
			product,
		))
	}

	if err := s.Sales.InsertSales(ctx, sales); err != nil {
		return fmt.Errorf("loading sales batch: %w", err)
	}

	state.Load.TransactionsLoaded = batchSize
	log.Info().Int("transactions", batchSize).Msg("Sales batch loaded")
	return nil
}

func (s *SynthesizeStage) synthesizeSale(customerID, locationID, dateID int64, product store.ProductSample) store.SaleRow {
	quantity := 1 + s.Rng.Intn(5)
	discount := decimal.NewFromFloat(s.Rng.Float64() * 0.25).Round(2)

	subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discounted := subtotal.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)
	tax := discounted.Mul(taxRate).Round(2)
	total := discounted.Add(tax)

	return store.SaleRow{
		CustomerID:      customerID,
		ProductID:       product.ProductID,
		LocationID:      locationID,
		DateID:          dateID,
		Quantity:        quantity,
		UnitPrice:       product.UnitPrice,
		DiscountPercent: discount,
		TaxAmount:       tax,
		TotalAmount:     total,
		OrderStatus:     orderStatuses[s.Rng.Intn(len(orderStatuses))],
		PaymentMethod:   paymentMethods[s.Rng.Intn(len(paymentMethods))],
	}
}
