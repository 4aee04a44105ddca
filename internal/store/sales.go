package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const saleColumns = `customer_id, product_id, location_id, date_id,
	quantity, unit_price, discount_percent, tax_amount,
	total_amount, order_status, payment_method`

// InsertSales loads the full batch as one multi-row insert inside a single
// transaction. All-or-nothing: a failure on any row rolls back everything.
func (s *Store) InsertSales(ctx context.Context, sales []SaleRow) error {
	if len(sales) == 0 {
		return nil
	}

	query, args := buildSalesInsert(sales)
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "store: inserting %d sales", len(sales))
		}
		return nil
	})
}

// InsertSale writes a single sale and returns its generated id. Used by the
// realtime generator, which loads one transaction per tick.
func (s *Store) InsertSale(ctx context.Context, sale SaleRow) (int64, error) {
	var saleID int64
	query := fmt.Sprintf(`INSERT INTO sales_fact (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING sale_id`, saleColumns)
	err := s.pool.QueryRow(ctx, query, saleArgs(sale)...).Scan(&saleID)
	if err != nil {
		return 0, errors.Wrap(err, "store: inserting sale")
	}
	return saleID, nil
}

func buildSalesInsert(sales []SaleRow) (string, []interface{}) {
	const cols = 11
	var (
		placeholders = make([]string, 0, len(sales))
		args         = make([]interface{}, 0, len(sales)*cols)
	)
	for i, sale := range sales {
		base := i * cols
		nums := make([]string, cols)
		for j := range nums {
			nums[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(nums, ", ")+")")
		args = append(args, saleArgs(sale)...)
	}
	query := fmt.Sprintf("INSERT INTO sales_fact (%s) VALUES %s", saleColumns, strings.Join(placeholders, ", "))
	return query, args
}

func saleArgs(sale SaleRow) []interface{} {
	return []interface{}{
		sale.CustomerID,
		sale.ProductID,
		sale.LocationID,
		sale.DateID,
		sale.Quantity,
		sale.UnitPrice.String(),
		sale.DiscountPercent.String(),
		sale.TaxAmount.String(),
		sale.TotalAmount.String(),
		sale.OrderStatus,
		sale.PaymentMethod,
	}
}
