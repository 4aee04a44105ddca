package store

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// The quality gate's four read-only checks. Each returns a count so the
// caller can accumulate every violated invariant instead of stopping at the
// first.

// CountNullCustomerSales counts fact rows with a null customer reference.
func (s *Store) CountNullCustomerSales(ctx context.Context) (int64, error) {
	return s.countQuery(ctx, `SELECT COUNT(*) FROM sales_fact WHERE customer_id IS NULL`)
}

// CountNegativeTotalSales counts fact rows with a negative total amount.
func (s *Store) CountNegativeTotalSales(ctx context.Context) (int64, error) {
	return s.countQuery(ctx, `SELECT COUNT(*) FROM sales_fact WHERE total_amount < 0`)
}

// CountOrphanedCustomerSales counts fact rows whose customer id does not
// resolve to a customer row (anti-join).
func (s *Store) CountOrphanedCustomerSales(ctx context.Context) (int64, error) {
	return s.countQuery(ctx, `
		SELECT COUNT(*)
		FROM sales_fact sf
		LEFT JOIN customers c ON sf.customer_id = c.customer_id
		WHERE c.customer_id IS NULL`)
}

// CountSalesOn counts fact rows whose date reference resolves to the given
// calendar date.
func (s *Store) CountSalesOn(ctx context.Context, d civil.Date) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM sales_fact sf
		JOIN date_dim d ON sf.date_id = d.date_id
		WHERE d.full_date = $1`, d.String(),
	).Scan(&count)
	if err != nil {
		return 0, errors.Wrapf(err, "store: counting sales on %s", d)
	}
	return count, nil
}

func (s *Store) countQuery(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "store: count query")
	}
	return count, nil
}
