package store

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// ReportFilter bounds every dashboard aggregate by a date range and an
// optional region set. An empty Regions slice means all regions.
type ReportFilter struct {
	From    civil.Date
	To      civil.Date
	Regions []string
}

func (f ReportFilter) args() []interface{} {
	regions := f.Regions
	if regions == nil {
		regions = []string{}
	}
	return []interface{}{f.From.String(), f.To.String(), regions}
}

// regionPredicate filters on l.region when a region set was provided.
// Region values are bound as an array parameter, never interpolated.
const regionPredicate = `(cardinality($3::text[]) = 0 OR l.region = ANY($3::text[]))`

// KPISummary is the dashboard's headline numbers.
type KPISummary struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalOrders     int64   `json:"total_orders"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	ActiveCustomers int64   `json:"active_customers"`
}

// KPIs computes revenue, order count, average order value and distinct
// customers for the filtered window.
func (s *Store) KPIs(ctx context.Context, f ReportFilter) (*KPISummary, error) {
	var k KPISummary
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE(ROUND(SUM(sf.total_amount)::numeric, 2), 0),
			COUNT(sf.sale_id),
			COALESCE(ROUND(AVG(sf.total_amount)::numeric, 2), 0),
			COUNT(DISTINCT sf.customer_id)
		FROM sales_fact sf
		JOIN date_dim d ON sf.date_id = d.date_id
		JOIN location l ON sf.location_id = l.location_id
		WHERE d.full_date BETWEEN $1 AND $2
		  AND `+regionPredicate,
		f.args()...,
	).Scan(&k.TotalRevenue, &k.TotalOrders, &k.AvgOrderValue, &k.ActiveCustomers)
	if err != nil {
		return nil, errors.Wrap(err, "store: kpi query")
	}
	return &k, nil
}

// TrendPoint is revenue and order count for one calendar date.
type TrendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// RevenueTrend returns per-date revenue for the filtered window.
func (s *Store) RevenueTrend(ctx context.Context, f ReportFilter) ([]TrendPoint, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			d.full_date::text,
			ROUND(SUM(sf.total_amount)::numeric, 2),
			COUNT(sf.sale_id)
		FROM sales_fact sf
		JOIN date_dim d ON sf.date_id = d.date_id
		JOIN location l ON sf.location_id = l.location_id
		WHERE d.full_date BETWEEN $1 AND $2
		  AND `+regionPredicate+`
		GROUP BY d.full_date
		ORDER BY d.full_date`,
		f.args()...)
	if err != nil {
		return nil, errors.Wrap(err, "store: trend query")
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Revenue, &p.Orders); err != nil {
			return nil, errors.Wrap(err, "store: scanning trend point")
		}
		points = append(points, p)
	}
	return points, errors.Wrap(rows.Err(), "store: reading trend points")
}

// RevenueSlice is revenue attributed to one grouping value (category,
// region or customer segment).
type RevenueSlice struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// RevenueByCategory groups revenue by product category.
func (s *Store) RevenueByCategory(ctx context.Context, f ReportFilter) ([]RevenueSlice, error) {
	return s.revenueSlices(ctx, f, `
		SELECT
			p.category,
			ROUND(SUM(sf.total_amount)::numeric, 2),
			COUNT(sf.sale_id)
		FROM sales_fact sf
		JOIN date_dim d ON sf.date_id = d.date_id
		JOIN location l ON sf.location_id = l.location_id
		JOIN products p ON sf.product_id = p.product_id
		WHERE d.full_date BETWEEN $1 AND $2
		  AND `+regionPredicate+`
		GROUP BY p.category
		ORDER BY 2 DESC`)
}

// RevenueByRegion groups revenue by location region.
func (s *Store) RevenueByRegion(ctx context.Context, f ReportFilter) ([]RevenueSlice, error) {
	return s.revenueSlices(ctx, f, `
		SELECT
			l.region,
			ROUND(SUM(sf.total_amount)::numeric, 2),
			COUNT(sf.sale_id)
		FROM sales_fact sf
		JOIN date_dim d ON sf.date_id = d.date_id
		JOIN location l ON sf.location_id = l.location_id
		WHERE d.full_date BETWEEN $1 AND $2
		  AND `+regionPredicate+`
		GROUP BY l.region
		ORDER BY 2 DESC`)
}

// SegmentBreakdown groups revenue by customer segment.
func (s *Store) SegmentBreakdown(ctx context.Context, f ReportFilter) ([]RevenueSlice, error) {
	return s.revenueSlices(ctx, f, `
		SELECT
			c.customer_segment,
			ROUND(SUM(sf.total_amount)::numeric, 2),
			COUNT(sf.sale_id)
		FROM sales_fact sf
		JOIN date_dim d ON sf.date_id = d.date_id
		JOIN location l ON sf.location_id = l.location_id
		JOIN customers c ON sf.customer_id = c.customer_id
		WHERE d.full_date BETWEEN $1 AND $2
		  AND `+regionPredicate+`
		GROUP BY c.customer_segment
		ORDER BY 2 DESC`)
}

func (s *Store) revenueSlices(ctx context.Context, f ReportFilter, query string) ([]RevenueSlice, error) {
	rows, err := s.pool.Query(ctx, query, f.args()...)
	if err != nil {
		return nil, errors.Wrap(err, "store: revenue slice query")
	}
	defer rows.Close()

	var slices []RevenueSlice
	for rows.Next() {
		var r RevenueSlice
		if err := rows.Scan(&r.Label, &r.Revenue, &r.Orders); err != nil {
			return nil, errors.Wrap(err, "store: scanning revenue slice")
		}
		slices = append(slices, r)
	}
	return slices, errors.Wrap(rows.Err(), "store: reading revenue slices")
}

// TopProduct is one row of the top-products ranking.
type TopProduct struct {
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// TopProducts ranks products by revenue within the filtered window.
func (s *Store) TopProducts(ctx context.Context, f ReportFilter, limit int) ([]TopProduct, error) {
	args := append(f.args(), limit)
	rows, err := s.pool.Query(ctx, `
		SELECT
			p.product_name,
			p.category,
			SUM(sf.quantity),
			ROUND(SUM(sf.total_amount)::numeric, 2)
		FROM sales_fact sf
		JOIN date_dim d ON sf.date_id = d.date_id
		JOIN location l ON sf.location_id = l.location_id
		JOIN products p ON sf.product_id = p.product_id
		WHERE d.full_date BETWEEN $1 AND $2
		  AND `+regionPredicate+`
		GROUP BY p.product_id, p.product_name, p.category
		ORDER BY 4 DESC
		LIMIT $4`,
		args...)
	if err != nil {
		return nil, errors.Wrap(err, "store: top products query")
	}
	defer rows.Close()

	var products []TopProduct
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ProductName, &p.Category, &p.TotalQuantity, &p.TotalRevenue); err != nil {
			return nil, errors.Wrap(err, "store: scanning top product")
		}
		products = append(products, p)
	}
	return products, errors.Wrap(rows.Err(), "store: reading top products")
}

// AllowedRegions lists the distinct regions present in the location
// dimension. The API validates requested region filters against this set.
func (s *Store) AllowedRegions(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT region FROM location ORDER BY region`)
	if err != nil {
		return nil, errors.Wrap(err, "store: listing regions")
	}
	defer rows.Close()

	var regions []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, errors.Wrap(err, "store: scanning region")
		}
		regions = append(regions, r)
	}
	return regions, errors.Wrap(rows.Err(), "store: reading regions")
}
