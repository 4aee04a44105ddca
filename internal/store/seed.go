package store

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CustomerSeed is one customer dimension row for initial population.
type CustomerSeed struct {
	Name             string
	Email            string
	Phone            string
	RegistrationDate civil.Date
	Segment          string
}

// LocationSeed is one location dimension row for initial population.
type LocationSeed struct {
	City    string
	State   string
	Country string
	Region  string
}

// ProductSeed is one synthetic product row for initial population. Unlike
// catalog upserts it carries subcategory and supplier.
type ProductSeed struct {
	Name        string
	Category    string
	Subcategory string
	UnitPrice   decimal.Decimal
	Supplier    string
}

// SeedCustomers inserts customers in one transaction, skipping rows whose
// email already exists. Returns the number of rows actually inserted.
func (s *Store) SeedCustomers(ctx context.Context, customers []CustomerSeed) (int, error) {
	inserted := 0
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, c := range customers {
			tag, err := tx.Exec(ctx, `
				INSERT INTO customers (customer_name, email, phone, registration_date, customer_segment)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (email) DO NOTHING
			`, c.Name, c.Email, c.Phone, c.RegistrationDate.String(), c.Segment)
			if err != nil {
				return errors.Wrapf(err, "inserting customer %q", c.Email)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// SeedLocations inserts location rows in one transaction.
func (s *Store) SeedLocations(ctx context.Context, locations []LocationSeed) (int, error) {
	inserted := 0
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, l := range locations {
			tag, err := tx.Exec(ctx, `
				INSERT INTO location (city, state, country, region)
				VALUES ($1, $2, $3, $4)
			`, l.City, l.State, l.Country, l.Region)
			if err != nil {
				return errors.Wrapf(err, "inserting location %s, %s", l.City, l.State)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// SeedProducts inserts synthetic products, skipping names that already
// exist so the seeder can coexist with catalog-synced products.
func (s *Store) SeedProducts(ctx context.Context, products []ProductSeed) (int, error) {
	inserted := 0
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, p := range products {
			tag, err := tx.Exec(ctx, `
				INSERT INTO products (product_name, category, subcategory, unit_price, supplier)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (product_name) DO NOTHING
			`, p.Name, p.Category, p.Subcategory, p.UnitPrice.String(), p.Supplier)
			if err != nil {
				return errors.Wrapf(err, "inserting product %q", p.Name)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// SeedDateRange fills the date dimension for every day in [from, to],
// skipping dates that already exist.
func (s *Store) SeedDateRange(ctx context.Context, from, to civil.Date) (int, error) {
	if to.Before(from) {
		return 0, errors.Errorf("invalid date range [%s, %s]", from, to)
	}

	inserted := 0
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		for d := from; !to.Before(d); d = d.AddDays(1) {
			row := NewDateRow(d)
			tag, err := tx.Exec(ctx, `
				INSERT INTO date_dim (full_date, day_of_week, day_of_month, month, quarter, year, is_weekend)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (full_date) DO NOTHING
			`, row.FullDate.String(), row.DayOfWeek, row.DayOfMonth, row.Month, row.Quarter, row.Year, row.IsWeekend)
			if err != nil {
				return errors.Wrapf(err, "inserting date %s", d)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
