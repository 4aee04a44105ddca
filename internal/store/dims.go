package store

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// NewDateRow derives the full date-dimension row for a calendar date.
func NewDateRow(d civil.Date) DateRow {
	weekday := d.In(time.UTC).Weekday()
	return DateRow{
		FullDate:   d,
		DayOfWeek:  weekday.String(),
		DayOfMonth: d.Day,
		Month:      int(d.Month),
		Quarter:    (int(d.Month)-1)/3 + 1,
		Year:       d.Year,
		IsWeekend:  weekday == time.Saturday || weekday == time.Sunday,
	}
}

// FindDateID looks up the date_dim row for a calendar date. Returns
// (0, false, nil) when no row exists.
func (s *Store) FindDateID(ctx context.Context, d civil.Date) (int64, bool, error) {
	var dateID int64
	err := s.pool.QueryRow(ctx,
		`SELECT date_id FROM date_dim WHERE full_date = $1`, d.String(),
	).Scan(&dateID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "store: looking up date %s", d)
	}
	return dateID, true, nil
}

// EnsureDate returns the date_id for a calendar date, inserting the derived
// dimension row if it does not exist yet. Concurrent writers racing on the
// same date converge on one row via the unique full_date constraint.
func (s *Store) EnsureDate(ctx context.Context, d civil.Date) (int64, error) {
	dateID, found, err := s.FindDateID(ctx, d)
	if err != nil {
		return 0, err
	}
	if found {
		return dateID, nil
	}

	row := NewDateRow(d)
	err = s.pool.QueryRow(ctx, `
		INSERT INTO date_dim (full_date, day_of_week, day_of_month, month, quarter, year, is_weekend)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (full_date) DO UPDATE SET full_date = EXCLUDED.full_date
		RETURNING date_id
	`, row.FullDate.String(), row.DayOfWeek, row.DayOfMonth, row.Month, row.Quarter, row.Year, row.IsWeekend,
	).Scan(&dateID)
	if err != nil {
		return 0, errors.Wrapf(err, "store: inserting date %s", d)
	}
	return dateID, nil
}

// SampleCustomerIDs draws up to limit customer ids in random order.
func (s *Store) SampleCustomerIDs(ctx context.Context, limit int) ([]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT customer_id FROM customers ORDER BY RANDOM() LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "store: sampling customers")
	}
	defer rows.Close()
	return scanIDs(rows, "customers")
}

// SampleLocationIDs draws up to limit location ids in random order.
func (s *Store) SampleLocationIDs(ctx context.Context, limit int) ([]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT location_id FROM location ORDER BY RANDOM() LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "store: sampling locations")
	}
	defer rows.Close()
	return scanIDs(rows, "locations")
}

// SampleProducts draws up to limit products with their current unit price.
// The price travels with the sample; it is not re-read at insert time.
func (s *Store) SampleProducts(ctx context.Context, limit int) ([]ProductSample, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, unit_price FROM products ORDER BY RANDOM() LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "store: sampling products")
	}
	defer rows.Close()

	var samples []ProductSample
	for rows.Next() {
		var p ProductSample
		if err := rows.Scan(&p.ProductID, &p.UnitPrice); err != nil {
			return nil, errors.Wrap(err, "store: scanning product sample")
		}
		samples = append(samples, p)
	}
	return samples, errors.Wrap(rows.Err(), "store: reading product samples")
}

func scanIDs(rows pgx.Rows, what string) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrapf(err, "store: scanning %s id", what)
		}
		ids = append(ids, id)
	}
	return ids, errors.Wrapf(rows.Err(), "store: reading %s ids", what)
}
