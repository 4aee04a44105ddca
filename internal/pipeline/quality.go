package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rakshithn/ecommerce-pipeline/internal/logger"
)

// Invariant names reported by the quality gate.
const (
	ViolationNullCustomer     = "null_customer"
	ViolationNegativeTotal    = "negative_total"
	ViolationOrphanedCustomer = "orphaned_customer"
	ViolationNoSalesToday     = "no_sales_today"
)

// QualityError carries every violated invariant from one gate run.
type QualityError struct {
	Violations []string
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("data quality checks failed: %s", strings.Join(e.Violations, ", "))
}

// QualityGateStage runs the fixed battery of invariant checks against the
// fact table. All four checks run regardless of earlier failures; the stage
// fails hard with the full violation list if any invariant is violated.
// This stage performs no writes.
type QualityGateStage struct {
	Quality QualityReader
}

func (s *QualityGateStage) Name() string { return "quality_gate" }

func (s *QualityGateStage) Execute(ctx context.Context, state *RunState) error {
	log := logger.FromContext(ctx)
	var violations []string

	nullCustomers, err := s.Quality.CountNullCustomerSales(ctx)
	if err != nil {
		return fmt.Errorf("null customer check: %w", err)
	}
	if nullCustomers > 0 {
		violations = append(violations, ViolationNullCustomer)
	}

	negativeTotals, err := s.Quality.CountNegativeTotalSales(ctx)
	if err != nil {
		return fmt.Errorf("negative total check: %w", err)
	}
	if negativeTotals > 0 {
		violations = append(violations, ViolationNegativeTotal)
	}

	orphans, err := s.Quality.CountOrphanedCustomerSales(ctx)
	if err != nil {
		return fmt.Errorf("orphan check: %w", err)
	}
	if orphans > 0 {
		violations = append(violations, ViolationOrphanedCustomer)
	}

	todaySales, err := s.Quality.CountSalesOn(ctx, state.Today)
	if err != nil {
		return fmt.Errorf("today check: %w", err)
	}
	if todaySales == 0 {
		violations = append(violations, ViolationNoSalesToday)
	}

	state.Quality = &QualityResult{Violations: violations}
	if len(violations) > 0 {
		return &QualityError{Violations: violations}
	}

	log.Info().Msg("All data quality checks passed")
	return nil
}
