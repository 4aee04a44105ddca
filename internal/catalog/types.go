package catalog

import "github.com/shopspring/decimal"

// Item is one product as returned by the catalog endpoint.
type Item struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// Product is a catalog item normalized to the warehouse's product shape:
// bounded name and description, mapped category, 2-decimal price.
type Product struct {
	Name        string
	Category    string
	UnitPrice   decimal.Decimal
	Description string
}
