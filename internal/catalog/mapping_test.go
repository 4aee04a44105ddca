package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

func TestMapCategory(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"electronics", CategoryElectronics},
		{"jewelery", CategoryJewelry},
		{"men's clothing", CategoryClothing},
		{"women's clothing", CategoryClothing},
		{"garden tools", CategoryOther},
		{"", CategoryOther},
		{"ELECTRONICS", CategoryOther}, // mapping is exact, source is lowercase
	}

	valid := map[string]bool{
		CategoryElectronics: true,
		CategoryJewelry:     true,
		CategoryClothing:    true,
		CategoryOther:       true,
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := MapCategory(tt.source)
			if got != tt.want {
				t.Errorf("MapCategory(%q) = %q, want %q", tt.source, got, tt.want)
			}
			if !valid[got] {
				t.Errorf("MapCategory(%q) = %q, not a member of the category set", tt.source, got)
			}
		})
	}
}

func TestNormalizeTruncation(t *testing.T) {
	item := Item{
		Title:       strings.Repeat("n", 150),
		Price:       19.999,
		Category:    "electronics",
		Description: strings.Repeat("d", 600),
	}

	p := item.Normalize()

	if len(p.Name) != 100 {
		t.Errorf("Name length = %d, want 100", len(p.Name))
	}
	if len(p.Description) != 500 {
		t.Errorf("Description length = %d, want 500", len(p.Description))
	}
	if p.Category != CategoryElectronics {
		t.Errorf("Category = %q, want %q", p.Category, CategoryElectronics)
	}
	if !p.UnitPrice.Equal(decimal.NewFromFloat(20.00)) {
		t.Errorf("UnitPrice = %s, want 20", p.UnitPrice)
	}
}

func TestNormalizeTruncationKeepsValidUTF8(t *testing.T) {
	// A multibyte rune straddling the limit must be dropped whole, not cut
	// mid-sequence.
	item := Item{
		Title:       strings.Repeat("a", 99) + "éé",
		Price:       10,
		Category:    "electronics",
		Description: strings.Repeat("б", 600),
	}

	p := item.Normalize()

	if !utf8.ValidString(p.Name) {
		t.Errorf("truncated name is invalid UTF-8: %q", p.Name)
	}
	if got := utf8.RuneCountInString(p.Name); got != 100 {
		t.Errorf("Name rune count = %d, want 100", got)
	}
	if !strings.HasSuffix(p.Name, "é") {
		t.Errorf("Name = %q, want the 100th rune kept intact", p.Name)
	}

	if !utf8.ValidString(p.Description) {
		t.Errorf("truncated description is invalid UTF-8: %q", p.Description)
	}
	if got := utf8.RuneCountInString(p.Description); got != 500 {
		t.Errorf("Description rune count = %d, want 500", got)
	}
}

func TestNormalizeShortFieldsUnchanged(t *testing.T) {
	item := Item{Title: "USB-C Hub", Price: 34.5, Category: "electronics", Description: "7-in-1"}

	p := item.Normalize()

	if p.Name != "USB-C Hub" {
		t.Errorf("Name = %q, want unchanged", p.Name)
	}
	if p.Description != "7-in-1" {
		t.Errorf("Description = %q, want unchanged", p.Description)
	}
}
