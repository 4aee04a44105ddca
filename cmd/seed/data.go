package main

import (
	"fmt"
	"math/rand"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rakshithn/ecommerce-pipeline/internal/store"
)

var (
	firstNames = []string{
		"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
		"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
		"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Nancy", "Daniel",
		"Karen", "Wei", "Lisa", "Omar", "Betty", "Anthony", "Priya", "Mark",
		"Sandra",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
		"Ramirez", "Lewis", "Patel",
	}
	emailDomains = []string{"example.com", "example.org", "example.net", "mail.test"}
	segments     = []string{"Premium", "Regular", "Budget"}

	cities = []string{
		"Springfield", "Riverton", "Fairview", "Lakewood", "Franklin",
		"Greenville", "Bristol", "Clinton", "Salem", "Madison", "Georgetown",
		"Arlington", "Ashland", "Burlington", "Clayton", "Dayton", "Dover",
		"Hudson", "Kingston", "Milton", "Newport", "Oakland", "Oxford",
	}
	states = []string{
		"California", "Texas", "Florida", "New York", "Pennsylvania",
		"Illinois", "Ohio", "Georgia", "North Carolina", "Michigan",
		"Washington", "Arizona", "Massachusetts", "Tennessee", "Colorado",
	}
	regions = []string{"North", "South", "East", "West", "Central"}

	productAdjectives = []string{
		"Compact", "Deluxe", "Ergonomic", "Premium", "Classic", "Modern",
		"Portable", "Wireless", "Smart", "Durable", "Lightweight", "Advanced",
		"Essential", "Professional", "Eco", "Heavy-Duty", "Foldable", "Rugged",
	}
	productNouns = []string{
		"Organizer", "Speaker", "Backpack", "Charger", "Bottle", "Lamp",
		"Keyboard", "Monitor", "Blender", "Jacket", "Sneakers", "Notebook",
		"Headset", "Tripod", "Cookware", "Blanket", "Toolkit", "Planner",
	}
	suppliers = []string{
		"Acme Trading Co", "Northwind Traders", "Globex Supply",
		"Initech Distribution", "Umbrella Goods", "Vandelay Imports",
		"Wayne Wholesale", "Stark Industries",
	}

	productCategories = map[string][]string{
		"Electronics":   {"Smartphones", "Laptops", "Tablets", "Accessories", "Audio", "Cameras"},
		"Clothing":      {"Men", "Women", "Kids", "Accessories", "Shoes", "Sportswear"},
		"Home & Garden": {"Furniture", "Decor", "Kitchen", "Tools", "Bedding", "Lighting"},
		"Books":         {"Fiction", "Non-Fiction", "Educational", "Comics", "Magazines"},
		"Sports":        {"Equipment", "Apparel", "Accessories", "Nutrition", "Outdoor"},
		"Beauty":        {"Skincare", "Makeup", "Haircare", "Fragrance", "Tools"},
		"Toys & Games":  {"Action Figures", "Board Games", "Educational", "Outdoor", "Puzzles"},
	}
)

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// generateCustomers synthesizes n customers with unique emails.
func generateCustomers(rng *rand.Rand, n int, today civil.Date) []store.CustomerSeed {
	customers := make([]store.CustomerSeed, 0, n)
	for i := 0; i < n; i++ {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)
		customers = append(customers, store.CustomerSeed{
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s.%d@%s", strings.ToLower(first), strings.ToLower(last), i, pick(rng, emailDomains)),
			Phone: fmt.Sprintf("555-%03d-%04d", rng.Intn(1000), rng.Intn(10000)),
			// Registered some time in the two years before today.
			RegistrationDate: today.AddDays(-rng.Intn(730)),
			Segment:          pick(rng, segments),
		})
	}
	return customers
}

// generateLocations synthesizes n US locations spread over the five regions.
func generateLocations(rng *rand.Rand, n int) []store.LocationSeed {
	locations := make([]store.LocationSeed, 0, n)
	for i := 0; i < n; i++ {
		locations = append(locations, store.LocationSeed{
			City:    pick(rng, cities),
			State:   pick(rng, states),
			Country: "USA",
			Region:  pick(rng, regions),
		})
	}
	return locations
}

// generateProducts synthesizes n products with unique names and prices in
// [10, 500).
func generateProducts(rng *rand.Rand, n int) []store.ProductSeed {
	categoryNames := make([]string, 0, len(productCategories))
	for name := range productCategories {
		categoryNames = append(categoryNames, name)
	}

	products := make([]store.ProductSeed, 0, n)
	for i := 0; i < n; i++ {
		category := pick(rng, categoryNames)
		subcategory := pick(rng, productCategories[category])
		name := fmt.Sprintf("%s %s %s #%d", pick(rng, productAdjectives), pick(rng, productNouns), subcategory, i+1)
		price := decimal.NewFromFloat(10 + rng.Float64()*490).Round(2)

		products = append(products, store.ProductSeed{
			Name:        name,
			Category:    category,
			Subcategory: subcategory,
			UnitPrice:   price,
			Supplier:    pick(rng, suppliers),
		})
	}
	return products
}
