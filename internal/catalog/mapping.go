package catalog

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Product categories used by the warehouse. Source categories outside the
// map fall back to CategoryOther.
const (
	CategoryElectronics = "Electronics"
	CategoryJewelry     = "Jewelry"
	CategoryClothing    = "Clothing"
	CategoryOther       = "Other"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

var categoryMap = map[string]string{
	"electronics":      CategoryElectronics,
	"jewelery":         CategoryJewelry,
	"men's clothing":   CategoryClothing,
	"women's clothing": CategoryClothing,
}

// MapCategory maps a free-text source category to one of the warehouse
// categories. Unknown categories map to CategoryOther, never to "".
func MapCategory(source string) string {
	if mapped, ok := categoryMap[source]; ok {
		return mapped
	}
	return CategoryOther
}

// Normalize converts a raw catalog item into the warehouse product shape.
func (i Item) Normalize() Product {
	return Product{
		Name:        truncate(i.Title, maxNameLen),
		Category:    MapCategory(i.Category),
		UnitPrice:   decimal.NewFromFloat(i.Price).Round(2),
		Description: truncate(i.Description, maxDescriptionLen),
	}
}

// truncate bounds s to max characters. Cutting runes, not bytes, keeps the
// result valid UTF-8 when a multibyte character straddles the limit.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
