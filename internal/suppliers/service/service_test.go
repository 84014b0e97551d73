package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"agriportal_backend/internal/suppliers/pincode"
	"agriportal_backend/platform/logger"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(completer Completer) *Service {
	log := logger.New("test")
	resolver := pincode.NewResolver(nil, nil, time.Second, log)
	svc := New(completer, resolver, nil, time.Second, log)
	svc.SetRandSource(func() *rand.Rand {
		return rand.New(rand.NewSource(42))
	})
	return svc
}

func TestSearchFallsBackToGeneratorOnCompleterError(t *testing.T) {
	svc := newTestService(&stubCompleter{err: errors.New("model down")})

	result := svc.Search(context.Background(), "110001", "", "")
	if result.Source != SourceGenerated {
		t.Fatalf("source = %q, want %q", result.Source, SourceGenerated)
	}
	if len(result.Suppliers) != generatedCount {
		t.Fatalf("expected %d generated suppliers, got %d", generatedCount, len(result.Suppliers))
	}
	if result.Location.City != "New Delhi" {
		t.Fatalf("resolved city = %q", result.Location.City)
	}
}

func TestSearchFallsBackWhenNothingParses(t *testing.T) {
	svc := newTestService(&stubCompleter{reply: "I cannot provide supplier listings."})

	result := svc.Search(context.Background(), "110001", "", "")
	if result.Source != SourceGenerated {
		t.Fatalf("source = %q, want %q", result.Source, SourceGenerated)
	}
	if len(result.Suppliers) != generatedCount {
		t.Fatalf("expected %d suppliers, got %d", generatedCount, len(result.Suppliers))
	}
}

func TestSearchUsesParsedSuppliers(t *testing.T) {
	completer := &stubCompleter{reply: `Name: Kisan Seed Bhandar
Type: Seeds
Lat: 28.65
Lng: 77.23
---
Name: Bharat Fertilizers
Type: Fertilizers
Lat: 28.60
Lng: 77.18`}
	svc := newTestService(completer)

	result := svc.Search(context.Background(), "110001", "", "")
	if result.Source != SourceAI {
		t.Fatalf("source = %q, want %q", result.Source, SourceAI)
	}
	if len(result.Suppliers) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(result.Suppliers))
	}
	if !sort.SliceIsSorted(result.Suppliers, func(i, j int) bool {
		return result.Suppliers[i].DistanceKm < result.Suppliers[j].DistanceKm
	}) {
		t.Fatalf("suppliers not sorted by distance")
	}
	for _, s := range result.Suppliers {
		if s.DistanceKm <= 0 || s.DistanceKm > nearbyRadiusKm {
			t.Fatalf("distance out of range: %v", s.DistanceKm)
		}
		if s.LocationLabel == "" {
			t.Fatalf("missing location label")
		}
	}
}

func TestGenerateSuppliersLayout(t *testing.T) {
	loc := pincode.Location{City: "Pune", State: "Maharashtra", Lat: 18.5204, Lng: 73.8567}
	suppliers := generateSuppliers(loc, "411001", rand.New(rand.NewSource(7)))

	if len(suppliers) != generatedCount {
		t.Fatalf("expected %d suppliers, got %d", generatedCount, len(suppliers))
	}

	perCategory := map[Category]int{}
	for _, s := range suppliers {
		perCategory[s.Category]++
		if s.DistanceKm <= 0 || s.DistanceKm > 55 {
			t.Fatalf("generated distance out of range: %v", s.DistanceKm)
		}
		if s.Source != SourceGenerated {
			t.Fatalf("source = %q", s.Source)
		}
		if s.City != "Pune" {
			t.Fatalf("city = %q", s.City)
		}
	}
	if !sort.SliceIsSorted(suppliers, func(i, j int) bool {
		return suppliers[i].DistanceKm < suppliers[j].DistanceKm
	}) {
		t.Fatalf("generated suppliers not sorted by distance")
	}
	for _, cat := range categoryOrder {
		if perCategory[cat] != 2 {
			t.Fatalf("category %q has %d suppliers, want 2", cat, perCategory[cat])
		}
	}
}

func TestGenerateSuppliersNamesCarryCity(t *testing.T) {
	loc := pincode.Location{City: "Jaipur", State: "Rajasthan", Lat: 26.9124, Lng: 75.7873}
	suppliers := generateSuppliers(loc, "302001", rand.New(rand.NewSource(3)))

	for _, s := range suppliers {
		if want := " - Jaipur"; len(s.Name) < len(want) || s.Name[len(s.Name)-len(want):] != want {
			t.Fatalf("name %q does not end with %q", s.Name, want)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	suppliers := []Supplier{
		{Name: "A", Category: CategorySeeds},
		{Name: "B", Category: CategoryFertilizers},
		{Name: "C", Category: CategorySeeds},
	}

	got := Filter(suppliers, "", CategorySeeds)
	if len(got) != 2 {
		t.Fatalf("expected 2 seed suppliers, got %d", len(got))
	}
	for _, s := range got {
		if s.Category != CategorySeeds {
			t.Fatalf("unexpected category %q", s.Category)
		}
	}
}

func TestFilterByQueryMatchesNameAndProducts(t *testing.T) {
	suppliers := []Supplier{
		{Name: "Green Valley Seeds", Category: CategorySeeds, Products: []string{"Rice Seeds"}},
		{Name: "FarmChem", Category: CategoryFertilizers, Products: []string{"Urea", "NPK"}},
		{Name: "AgriTech Equipment", Category: CategoryEquipment, Products: []string{"Tractors"}},
	}

	if got := Filter(suppliers, "green", ""); len(got) != 1 || got[0].Name != "Green Valley Seeds" {
		t.Fatalf("name filter failed: %v", got)
	}
	if got := Filter(suppliers, "urea", ""); len(got) != 1 || got[0].Name != "FarmChem" {
		t.Fatalf("product filter failed: %v", got)
	}
	if got := Filter(suppliers, "TRACTOR", ""); len(got) != 1 {
		t.Fatalf("filter should be case-insensitive: %v", got)
	}
	if got := Filter(suppliers, "nothing-matches", ""); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	suppliers := []Supplier{
		{Name: "A", Category: CategorySeeds},
		{Name: "B", Category: CategoryFertilizers},
	}

	_ = Filter(suppliers, "a", CategorySeeds)
	if len(suppliers) != 2 {
		t.Fatalf("input slice was mutated")
	}
}

func TestRankKeepsNearestSixWhenAllFar(t *testing.T) {
	loc := pincode.Location{City: "New Delhi", Lat: 28.6139, Lng: 77.2090}
	var far []Supplier
	for i := 0; i < 8; i++ {
		far = append(far, Supplier{Name: "S", Lat: 10.0 + float64(i), Lng: 70.0})
	}

	ranked := rank(far, loc)
	if len(ranked) != generatedCount {
		t.Fatalf("expected first %d far suppliers, got %d", generatedCount, len(ranked))
	}
	if !sort.SliceIsSorted(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	}) {
		t.Fatalf("ranked suppliers not sorted")
	}
}

func TestRankFiltersToNearbyRadius(t *testing.T) {
	loc := pincode.Location{City: "New Delhi", Lat: 28.6139, Lng: 77.2090}
	suppliers := []Supplier{
		{Name: "near", Lat: 28.62, Lng: 77.21},
		{Name: "far", Lat: 20.0, Lng: 70.0},
	}

	ranked := rank(suppliers, loc)
	if len(ranked) != 1 || ranked[0].Name != "near" {
		t.Fatalf("expected only the nearby supplier, got %v", ranked)
	}
}
