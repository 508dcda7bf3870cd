// Package seed generates a deterministic synthetic electronics catalog for
// local development and load testing.
package seed

import (
	"fmt"
	"math/rand"

	"github.com/anshulpatil/catalog-search/internal/catalog"
)

type modelFamily struct {
	brand    string
	family   string
	category string
	minPrice float64
	maxPrice float64
}

var families = []modelFamily{
	{"Apple", "iPhone", "mobile", 40000, 160000},
	{"Samsung", "Galaxy S", "mobile", 35000, 130000},
	{"Samsung", "Galaxy M", "mobile", 12000, 30000},
	{"Xiaomi", "Redmi Note", "mobile", 10000, 25000},
	{"OnePlus", "Nord", "mobile", 20000, 45000},
	{"Realme", "Narzo", "mobile", 9000, 22000},
	{"Oppo", "Reno", "mobile", 22000, 45000},
	{"Vivo", "V Series", "mobile", 18000, 40000},
	{"Motorola", "Edge", "mobile", 18000, 40000},
	{"Dell", "Inspiron", "laptop", 40000, 90000},
	{"Lenovo", "IdeaPad", "laptop", 35000, 80000},
	{"Asus", "VivoBook", "laptop", 38000, 85000},
	{"Acer", "Aspire", "laptop", 32000, 70000},
	{"Boat", "Rockerz", "headphone", 1000, 4000},
	{"JBL", "Tune", "headphone", 2000, 8000},
	{"Sony", "WH Series", "headphone", 8000, 30000},
}

var colors = []string{"black", "white", "blue", "red", "green", "silver", "gold", "space gray", "midnight blue"}

var ramOptions = []string{"4gb", "6gb", "8gb", "12gb", "16gb"}

var storageOptions = []string{"64gb", "128gb", "256gb", "512gb", "1tb"}

var descriptionTemplates = map[string]string{
	"mobile":    "%s smartphone with %s ram and %s storage in %s. Fast charging, dual camera, and all-day battery life.",
	"laptop":    "%s laptop with %s ram and %s ssd in %s. Lightweight build with a full HD display.",
	"headphone": "%s wireless headphones in %s with deep bass and long playback time.",
}

// Generate returns n synthetic products. The same (n, seed) pair always
// produces the same catalog.
func Generate(n int, seed int64) []*catalog.Product {
	rng := rand.New(rand.NewSource(seed))
	products := make([]*catalog.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, generateOne(rng))
	}
	return products
}

func generateOne(rng *rand.Rand) *catalog.Product {
	fam := families[rng.Intn(len(families))]
	modelNum := 10 + rng.Intn(15)
	color := colors[rng.Intn(len(colors))]
	ram := ramOptions[rng.Intn(len(ramOptions))]
	storage := storageOptions[rng.Intn(len(storageOptions))]

	model := fmt.Sprintf("%s %d", fam.family, modelNum)
	title := fmt.Sprintf("%s %s (%s, %s)", fam.brand, model, color, storage)

	var description string
	switch fam.category {
	case "headphone":
		description = fmt.Sprintf(descriptionTemplates[fam.category], fam.brand, color)
	default:
		description = fmt.Sprintf(descriptionTemplates[fam.category], fam.brand, ram, storage, color)
	}

	mrp := fam.minPrice + rng.Float64()*(fam.maxPrice-fam.minPrice)
	discount := float64(rng.Intn(40))
	price := mrp * (1 - discount/100)

	metadata := map[string]string{
		"color": color,
		"model": model,
	}
	if fam.category != "headphone" {
		metadata["ram"] = ram
		metadata["storage"] = storage
	}

	p := &catalog.Product{
		Title:              title,
		Description:        description,
		Brand:              fam.brand,
		Category:           fam.category,
		Price:              round2(price),
		MRP:                round2(mrp),
		SellingPrice:       round2(price),
		Currency:           "INR",
		Rating:             round2(2.5 + rng.Float64()*2.5),
		Stock:              rng.Intn(500),
		Metadata:           metadata,
		UnitsSold:          rng.Intn(100000),
		ReturnRate:         round2(rng.Float64() * 0.3),
		ReviewCount:        rng.Intn(10000),
		ComplaintCount:     rng.Intn(500),
		DiscountPercentage: discount,
		IsLatest:           modelNum >= 20,
	}
	p.RefreshSearchText()
	return p
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}
