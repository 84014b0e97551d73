package service

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

func testParseContext() parseContext {
	return parseContext{
		City:    "New Delhi",
		State:   "Delhi",
		Pincode: "110001",
		UserLat: 28.6139,
		UserLng: 77.2090,
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestParseSuppliersFullBlocks(t *testing.T) {
	response := `Name: Kisan Seed Bhandar
Type: Seeds
Address: 12 Chandni Chowk, New Delhi - 110001
Phone: +91 9876543210
Products: Wheat Seeds, Rice Seeds, Mustard Seeds
Lat: 28.65
Lng: 77.23
---
Name: Bharat Fertilizers
Type: Fertilizers
Address: Karol Bagh, New Delhi
Phone: 9811122233
Products: Urea, DAP, NPK
Lat: 28.64
Lng: 77.19`

	suppliers := parseSuppliers(response, testParseContext(), testRand())
	if len(suppliers) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(suppliers))
	}

	first := suppliers[0]
	if first.Name != "Kisan Seed Bhandar" {
		t.Fatalf("name = %q", first.Name)
	}
	if first.Category != CategorySeeds {
		t.Fatalf("category = %q", first.Category)
	}
	if first.Lat != 28.65 || first.Lng != 77.23 {
		t.Fatalf("coordinates = %v, %v", first.Lat, first.Lng)
	}
	if first.Phone != "+919876543210" {
		t.Fatalf("phone not normalized: %q", first.Phone)
	}
	if len(first.Products) != 3 || first.Products[0] != "Wheat Seeds" {
		t.Fatalf("products = %v", first.Products)
	}
	if first.Source != SourceAI {
		t.Fatalf("source = %q", first.Source)
	}

	if suppliers[1].Category != CategoryFertilizers {
		t.Fatalf("second category = %q", suppliers[1].Category)
	}
}

func TestParseSuppliersSkipsBlocksWithoutName(t *testing.T) {
	response := `Here are some suppliers near you:
---
Type: Seeds, Products: Wheat Seeds
---
Name: Real Shop, Type: Equipment`

	suppliers := parseSuppliers(response, testParseContext(), testRand())
	if len(suppliers) != 1 {
		t.Fatalf("expected 1 supplier, got %d", len(suppliers))
	}
	if suppliers[0].Name != "Real Shop" {
		t.Fatalf("name = %q", suppliers[0].Name)
	}
}

func TestParseSuppliersEmptyResponse(t *testing.T) {
	if got := parseSuppliers("", testParseContext(), testRand()); len(got) != 0 {
		t.Fatalf("expected no suppliers from empty response, got %d", len(got))
	}
	if got := parseSuppliers("The model cannot help with that.", testParseContext(), testRand()); len(got) != 0 {
		t.Fatalf("expected no suppliers from prose response, got %d", len(got))
	}
}

func TestParseSuppliersStripsMarkdownEmphasis(t *testing.T) {
	response := "**Name:** Agro Mart, **Type:** Seeds"
	suppliers := parseSuppliers(response, testParseContext(), testRand())
	if len(suppliers) != 1 {
		t.Fatalf("expected 1 supplier, got %d", len(suppliers))
	}
	if suppliers[0].Name != "Agro Mart" {
		t.Fatalf("name = %q", suppliers[0].Name)
	}
}

func TestParseSuppliersCapsProductsAtFour(t *testing.T) {
	response := "Name: Test Seeds, Type: Seeds, Products: A, B, C, D, E"
	suppliers := parseSuppliers(response, testParseContext(), testRand())
	if len(suppliers) != 1 {
		t.Fatalf("expected 1 supplier, got %d", len(suppliers))
	}
	if len(suppliers[0].Products) != maxProducts {
		t.Fatalf("products = %v, want %d entries", suppliers[0].Products, maxProducts)
	}
}

func TestParseSuppliersDefaultsProducts(t *testing.T) {
	response := "Name: Bare Shop, Type: Seeds"
	suppliers := parseSuppliers(response, testParseContext(), testRand())
	if len(suppliers[0].Products) != 1 || suppliers[0].Products[0] != "Various Products" {
		t.Fatalf("products = %v", suppliers[0].Products)
	}
}

func TestParseSuppliersRoundRobinCategory(t *testing.T) {
	response := `Name: Shop A, Type: General Store
---
Name: Shop B, Type: General Store
---
Name: Shop C, Type: General Store`

	suppliers := parseSuppliers(response, testParseContext(), testRand())
	if len(suppliers) != 3 {
		t.Fatalf("expected 3 suppliers, got %d", len(suppliers))
	}
	for i, s := range suppliers {
		if s.Category != categoryOrder[i%len(categoryOrder)] {
			t.Fatalf("supplier %d category = %q, want %q", i, s.Category, categoryOrder[i%len(categoryOrder)])
		}
	}
}

func TestParseSuppliersCategorySynonyms(t *testing.T) {
	cases := []struct {
		typeField string
		want      Category
	}{
		{"seed shop", CategorySeeds},
		{"Fertilizer dealer", CategoryFertilizers},
		{"Farm machinery", CategoryEquipment},
		{"tools and hardware", CategoryEquipment},
	}
	for _, c := range cases {
		response := "Name: X, Type: " + c.typeField
		suppliers := parseSuppliers(response, testParseContext(), testRand())
		if suppliers[0].Category != c.want {
			t.Fatalf("type %q parsed as %q, want %q", c.typeField, suppliers[0].Category, c.want)
		}
	}
}

func TestParseSuppliersJittersMissingCoordinates(t *testing.T) {
	pctx := testParseContext()
	response := "Name: No Coords Shop, Type: Seeds"

	suppliers := parseSuppliers(response, pctx, testRand())
	s := suppliers[0]
	if math.Abs(s.Lat-pctx.UserLat) > 0.05 {
		t.Fatalf("jittered lat %v too far from user lat %v", s.Lat, pctx.UserLat)
	}
	if math.Abs(s.Lng-pctx.UserLng) > 0.05 {
		t.Fatalf("jittered lng %v too far from user lng %v", s.Lng, pctx.UserLng)
	}
}

func TestParseSuppliersDefaultsAddressAndContact(t *testing.T) {
	response := "Name: Sparse Shop, Type: Seeds"
	suppliers := parseSuppliers(response, testParseContext(), testRand())
	s := suppliers[0]

	if s.Address != "New Delhi, Delhi - 110001" {
		t.Fatalf("address = %q", s.Address)
	}
	if !strings.HasPrefix(s.Phone, "+91") {
		t.Fatalf("synthesized phone = %q", s.Phone)
	}
	if s.Email != "contact@sparseshop.com" {
		t.Fatalf("email = %q", s.Email)
	}
	if s.Rating < 4.5 || s.Rating > 5.0 {
		t.Fatalf("rating out of range: %v", s.Rating)
	}
	if s.OpeningHours != defaultOpeningHours {
		t.Fatalf("opening hours = %q", s.OpeningHours)
	}
	if s.PriceRange != priceRangeByCategory[CategorySeeds] {
		t.Fatalf("price range = %q", s.PriceRange)
	}
}
