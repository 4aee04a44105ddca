package store

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// UpsertAction reports whether an upsert created or modified a row.
type UpsertAction string

const (
	ActionInserted UpsertAction = "inserted"
	ActionUpdated  UpsertAction = "updated"
)

// UpsertResult is the outcome of a single product upsert.
type UpsertResult struct {
	Action    UpsertAction
	ProductID int64
}

// ProductUpsert is the writable shape of a product row. Identity is the
// product name; on conflict only price and category change.
type ProductUpsert struct {
	Name        string
	Category    string
	UnitPrice   decimal.Decimal
	Description string
}

// ProductSample is a sampled product id with its unit price at sampling time.
type ProductSample struct {
	ProductID int64
	UnitPrice decimal.Decimal
}

// DateRow is one row of the date dimension, fully derived from FullDate.
type DateRow struct {
	FullDate   civil.Date
	DayOfWeek  string
	DayOfMonth int
	Month      int
	Quarter    int
	Year       int
	IsWeekend  bool
}

// SaleRow is one synthesized transaction destined for the fact table.
type SaleRow struct {
	CustomerID      int64
	ProductID       int64
	LocationID      int64
	DateID          int64
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	OrderStatus     string
	PaymentMethod   string
}
